package template

import "github.com/conduitworks/conduit/internal/domain"

// BuiltinTemplates returns the set of templates shipped with conduit.
// Callers receive fresh copies on every invocation.
func BuiltinTemplates() []*domain.TaskTemplate {
	return []*domain.TaskTemplate{
		{
			ID:   "quick-chat",
			Kind: domain.TaskKindChat,
			PromptTemplate: "{{message}}",
			Variables: []domain.TemplateVariable{
				{Name: "message", Description: "Message to send to the engine", Required: true},
			},
			Examples: []string{
				`conduit run -t quick-chat -v message="how do goroutine leaks happen?"`,
			},
		},
		{
			ID:   "explain-code",
			Kind: domain.TaskKindAnalyze,
			PromptTemplate: "Explain what the following code does, focusing on {{focus}}. " +
				"Call out anything surprising or error-prone.",
			Variables: []domain.TemplateVariable{
				{Name: "focus", Description: "Aspect to emphasize in the explanation", Default: "overall behavior"},
			},
			RequireFiles: true,
			Examples: []string{
				`conduit run -t explain-code -f parser.go -v focus="error handling"`,
			},
		},
		{
			ID:   "refactor-function",
			Kind: domain.TaskKindRefactor,
			PromptTemplate: "Refactor the function {{function}} to {{goal}}. " +
				"Preserve its observable behavior and update callers as needed.",
			Variables: []domain.TemplateVariable{
				{Name: "function", Description: "Name of the function to refactor", Required: true},
				{Name: "goal", Description: "What the refactor should achieve", Required: true},
			},
			RequireFiles: true,
			Examples: []string{
				`conduit run -t refactor-function -f stream.go -v function=Next -v goal="remove the nested select"`,
			},
		},
		{
			ID:   "generate-tests",
			Kind: domain.TaskKindGenerate,
			PromptTemplate: "Write {{style}} tests for the code in the given files. " +
				"Cover the edge cases a careful reviewer would ask about.",
			Variables: []domain.TemplateVariable{
				{Name: "style", Description: "Testing style or framework to use", Default: "table-driven"},
			},
			RequireFiles: true,
			Examples: []string{
				`conduit run -t generate-tests -f registry.go`,
			},
		},
	}
}

// RegisterBuiltins registers every built-in template into the registry.
// The first error stops registration and is returned.
func RegisterBuiltins(r *Registry) error {
	for _, t := range BuiltinTemplates() {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
