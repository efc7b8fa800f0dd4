package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMedicalPrompt(t *testing.T) {
	age := 30
	gender := "erkek"
	prompt := BuildMedicalPrompt("Kelläm agyrýar we gyzzyrma bar", &age, &gender)

	assert.Contains(t, prompt, "Kelläm agyrýar we gyzzyrma bar")
	assert.Contains(t, prompt, "- Hassanyň ýaşy: 30\n")
	assert.Contains(t, prompt, "- Jynsy: erkek\n")
	assert.Contains(t, prompt, ConsultClinicianClause)
	assert.Contains(t, prompt, "1) Mümkin sebäpler")
	assert.Contains(t, prompt, "2) Öýde edilip bilinjek")
	assert.Contains(t, prompt, "3) Haçan hökmany suratda lukmana")
	assert.True(t, strings.HasSuffix(prompt, "Jogabyňy diňe türkmen dilinde ýaz.\n"))
}

func TestBuildMedicalPromptUnknownAttributes(t *testing.T) {
	blank := "  "
	prompt := BuildMedicalPrompt("Bokurdagym agyrýar üç gün bäri", nil, &blank)

	assert.Contains(t, prompt, "- Hassanyň ýaşy: näbelli\n")
	assert.Contains(t, prompt, "- Jynsy: näbelli\n")
}

func TestBuildMedicalPromptZeroAge(t *testing.T) {
	age := 0
	prompt := BuildMedicalPrompt("Çagamyň gyzzyrmasy ýokary", &age, nil)
	assert.Contains(t, prompt, "- Hassanyň ýaşy: 0\n")
}
