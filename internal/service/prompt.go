package service

import (
	"strconv"
	"strings"
)

// ConsultClinicianClause is embedded verbatim in every prompt; the model is
// told to repeat it in its answer.
const ConsultClinicianClause = "Hakykydan hem saglyk ýagdaýyňy barlatmak üçin hakyky lukmana ýa-da keselhanä ýüz tutmak hökmanydyr."

const unknownAttribute = "näbelli"

// BuildMedicalPrompt renders the fixed instruction template around the
// question. Missing age or gender is rendered as unknown.
func BuildMedicalPrompt(question string, age *int, gender *string) string {
	ageText := unknownAttribute
	if age != nil {
		ageText = strconv.Itoa(*age)
	}
	genderText := unknownAttribute
	if gender != nil && strings.TrimSpace(*gender) != "" {
		genderText = strings.TrimSpace(*gender)
	}

	var b strings.Builder
	b.WriteString("Sen tejribeli türkmen lukmany. Aşakdaky hassanyň soragyna anyk, düşnükli we ýönekeý dilde jogap ber.\n\n")
	b.WriteString("DUÝDURYŞ: Jogabyňyň içinde hökman maslahat görnüşinde aýdyp geç:\n")
	b.WriteString("\"" + ConsultClinicianClause + "\"\n\n")
	b.WriteString("Eger maglumatlar berlen bolsa, olaryň esasynda jogap ber:\n")
	b.WriteString("- Hassanyň ýaşy: " + ageText + "\n")
	b.WriteString("- Jynsy: " + genderText + "\n\n")
	b.WriteString("Hassanyň soragy:\n")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString("Jogabyňda hökman aşakdakylary goş:\n")
	b.WriteString("1) Mümkin sebäpler we düşündirişi\n")
	b.WriteString("2) Öýde edilip bilinjek ýönekeý çäreler\n")
	b.WriteString("3) Haçan hökmany suratda lukmana ýüz tutmaly\n")
	b.WriteString("Jogabyňy diňe türkmen dilinde ýaz.\n")
	return b.String()
}
