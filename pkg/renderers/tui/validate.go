package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/render"
)

// checkValue applies the constraints a browser would enforce natively for the
// declared attributes. It returns a message, or "" when the value passes.
func checkValue(c model.FormComponent, node render.Node, value any) string {
	problem := constraintProblem(c, node, value)
	if problem != "" && c.CustomErrorMessage != "" {
		return c.CustomErrorMessage
	}
	return problem
}

func constraintProblem(c model.FormComponent, node render.Node, value any) string {
	switch typed := value.(type) {
	case bool:
		if c.Required && !typed {
			return "must be checked"
		}
		return ""
	case []any:
		if c.Required && len(typed) == 0 {
			return "select at least one option"
		}
		return ""
	}

	text := model.ValueString(value)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if c.Required {
			return "is required"
		}
		return ""
	}
	if node.Descriptor.InputType == "number" {
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return "must be a number"
		}
	}
	length := utf8.RuneCountInString(text)
	if c.MinLength != nil && length < *c.MinLength {
		return fmt.Sprintf("must be at least %d characters", *c.MinLength)
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		return fmt.Sprintf("must be at most %d characters", *c.MaxLength)
	}
	words := len(strings.Fields(text))
	if c.MinWords != nil && words < *c.MinWords {
		return fmt.Sprintf("must have at least %d words", *c.MinWords)
	}
	if c.MaxWords != nil && words > *c.MaxWords {
		return fmt.Sprintf("must have at most %d words", *c.MaxWords)
	}
	return ""
}
