package analysis

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/imkonsowa/rera-insights/models"
	"github.com/imkonsowa/rera-insights/schema"
)

var listingsPrompt = template.Must(template.New("listings").Parse(
	`You are a real estate research assistant for India. Find RERA-approved residential and commercial projects located in or near "{{.Address}}".
{{- if .Location}} The user pinned the location {{.Location}} (longitude latitude).{{end}}

For every project give its name, the developer, a short description (configuration, price range and RERA registration number when known) and a URL where the listing can be verified.

Return ONLY a JSON object, with no explanations and no markdown, that conforms to this JSON schema:
{{.Schema}}

If you cannot find any project return {"listings": []}.`))

var valuationPrompt = template.Must(template.New("valuation").Parse(
	`You are a property valuation analyst. Prepare a hedonic valuation report for the property at "{{.Address}}".
{{- if .Location}} The user pinned the location {{.Location}} (longitude latitude).{{end}}

Estimate a fair market value, break the value down into qualitative factors (connectivity, social infrastructure, amenities, environment, legal clarity and similar) scoring each from 0 to 5 with a justification, describe recent growth trends for the locality, give a projected appreciation and list the URLs of your sources.

Return ONLY a JSON object, with no explanations and no markdown, that conforms to this JSON schema:
{{.Schema}}`))

type promptInput struct {
	Address  string
	Location string
	Schema   string
}

// renderPrompt fills tmpl with the address, the optional pinned point and
// the schema text of kind.
func renderPrompt(tmpl *template.Template, kind schema.Kind, address string, loc *models.Location) (string, error) {
	schemaText, err := schema.Describe(kind)
	if err != nil {
		return "", err
	}

	in := promptInput{
		Address: strings.TrimSpace(address),
		Schema:  strings.TrimSpace(schemaText),
	}

	if loc != nil {
		point, err := loc.WKT()
		if err != nil {
			return "", fmt.Errorf("failed to encode location: %w", err)
		}
		in.Location = point
	}

	var prompt strings.Builder
	if err := tmpl.Execute(&prompt, in); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", kind, err)
	}

	return prompt.String(), nil
}
