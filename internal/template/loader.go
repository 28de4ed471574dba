package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conduitworks/conduit/internal/domain"
)

// templateFile is the on-disk YAML shape of a user template.
type templateFile struct {
	ID             string         `yaml:"id"`
	Kind           string         `yaml:"kind"`
	PromptTemplate string         `yaml:"prompt_template"`
	Variables      []variableFile `yaml:"variables"`
	RequireFiles   bool           `yaml:"require_files"`
	Examples       []string       `yaml:"examples"`
}

type variableFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Default     string `yaml:"default"`
	Required    bool   `yaml:"required"`
}

// LoadDir loads every *.yaml and *.yml file under dir into the registry.
// A missing directory is not an error; users aren't required to define
// custom templates. Files are loaded in name order so duplicate-id errors
// are deterministic.
func LoadDir(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read template dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		t, err := LoadFile(path)
		if err != nil {
			return err
		}
		if err := r.Register(t); err != nil {
			return fmt.Errorf("template file %s: %w", path, err)
		}
	}
	return nil
}

// LoadFile parses a single YAML template file.
func LoadFile(path string) (*domain.TaskTemplate, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the user's own template directory
	if err != nil {
		return nil, fmt.Errorf("read template file %s: %w", path, err)
	}

	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse template file %s: %w", path, err)
	}

	kind, err := domain.ParseTaskKind(tf.Kind)
	if err != nil {
		return nil, fmt.Errorf("template file %s: %w", path, err)
	}

	vars := make([]domain.TemplateVariable, 0, len(tf.Variables))
	for _, v := range tf.Variables {
		vars = append(vars, domain.TemplateVariable{
			Name:        v.Name,
			Description: v.Description,
			Default:     v.Default,
			Required:    v.Required,
		})
	}

	return &domain.TaskTemplate{
		ID:             tf.ID,
		Kind:           kind,
		PromptTemplate: tf.PromptTemplate,
		Variables:      vars,
		RequireFiles:   tf.RequireFiles,
		Examples:       tf.Examples,
	}, nil
}
