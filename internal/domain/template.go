package domain

// TemplateVariable declares one substitutable variable in a task template.
type TemplateVariable struct {
	// Name is the placeholder name used as {{name}} in the prompt template.
	Name string `json:"name" yaml:"name"`

	// Description explains what the variable is for.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Default is used when the render context provides no value.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`

	// Required makes rendering fail when the context omits the variable
	// and no default exists.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
}

// TaskTemplate is a process-wide registered definition that renders a
// parameterized prompt into an AITask. Rendering is a pure function: it
// never touches an engine or session.
//
// Example YAML representation:
//
//	id: explain-code
//	kind: analyze
//	prompt_template: "Explain what {{ file }} does, focusing on {{ focus }}."
//	variables:
//	  - name: file
//	    required: true
//	  - name: focus
//	    default: "its public API"
//	require_files: true
type TaskTemplate struct {
	// ID uniquely identifies the template.
	ID string `json:"id" yaml:"id"`

	// Kind is the task kind produced by rendering.
	Kind TaskKind `json:"kind" yaml:"kind"`

	// PromptTemplate is the prompt text with {{var}} placeholders.
	PromptTemplate string `json:"prompt_template" yaml:"prompt_template"`

	// Variables is the ordered list of declared variables.
	Variables []TemplateVariable `json:"variables,omitempty" yaml:"variables,omitempty"`

	// RequireFiles makes rendering fail when the context carries no files.
	RequireFiles bool `json:"require_files,omitempty" yaml:"require_files,omitempty"`

	// Examples holds optional sample invocations for display.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Clone creates a deep copy of the template so registry state cannot be
// mutated through returned values.
func (t *TaskTemplate) Clone() *TaskTemplate {
	if t == nil {
		return nil
	}
	c := &TaskTemplate{
		ID:             t.ID,
		Kind:           t.Kind,
		PromptTemplate: t.PromptTemplate,
		RequireFiles:   t.RequireFiles,
	}
	if len(t.Variables) > 0 {
		c.Variables = make([]TemplateVariable, len(t.Variables))
		copy(c.Variables, t.Variables)
	}
	if len(t.Examples) > 0 {
		c.Examples = make([]string, len(t.Examples))
		copy(c.Examples, t.Examples)
	}
	return c
}
