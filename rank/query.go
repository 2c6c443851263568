package rank

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// BuildQuery turns a persona into the ranking query "<role>. <task>".
// The persona may be an object with a "role" field or a plain string; the
// job may be a plain string or an object with a "task" field.
func BuildQuery(p *pdfoutline.Persona) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	role, err := field(p.Persona, "role")
	if err != nil {
		return "", pdfoutline.Errorf(pdfoutline.EINVALID, "persona: %s", err)
	}
	task, err := field(p.JobToBeDone, "task")
	if err != nil {
		return "", pdfoutline.Errorf(pdfoutline.EINVALID, "job to be done: %s", err)
	}
	if role == "" {
		return "", pdfoutline.Errorf(pdfoutline.EINVALID, "persona role required")
	}
	if task == "" {
		return "", pdfoutline.Errorf(pdfoutline.EINVALID, "job to be done task required")
	}
	return role + ". " + task, nil
}

// field decodes raw as a string, or as an object and returns its key field.
func field(raw json.RawMessage, key string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	v, ok := obj[key]
	if !ok {
		return "", nil
	}
	if err := json.Unmarshal(v, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
