package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

var givenNames = []string{
	"Anna", "Bjarni", "Dagur", "Elín", "Freyja", "Gunnar", "Helga", "Ingi",
	"Jóhanna", "Kristján", "Lilja", "Magnús", "Nanna", "Ólafur", "Ragnar",
	"Sigrún", "Tómas", "Unnur", "Vigdís", "Þórdís",
}

var patronymStems = []string{
	"Jóns", "Sigurðar", "Guðmunds", "Einars", "Kristins",
	"Árna", "Páls", "Stefáns", "Björns", "Halldórs",
}

func GenerateRandomDisplayName() string {
	given := givenNames[rand.Intn(len(givenNames))]
	stem := patronymStems[rand.Intn(len(patronymStems))]

	suffix := "son"
	if rand.Intn(2) == 0 {
		suffix = "dóttir"
	}

	return given + " " + stem + suffix
}

var asciiFolding = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ý", "y",
	"ð", "d", "þ", "th", "æ", "ae", "ö", "o",
)

// GenerateEmailFromDisplayName derives a plain-ascii address, with a random
// digit suffix so repeated seeds do not collide on the unique email index.
func GenerateEmailFromDisplayName(displayName, emailDomain string) string {
	local := strings.ToLower(strings.ReplaceAll(displayName, " ", "."))
	local = asciiFolding.Replace(local)

	return fmt.Sprintf("%s%d@%s", local, rand.Intn(1000), emailDomain)
}

func GenerateRandomEmployee(orgID int64, emailDomain string) *domain.Employee {
	name := GenerateRandomDisplayName()

	return &domain.Employee{
		OrganizationID: orgID,
		DisplayName:    name,
		Email:          GenerateEmailFromDisplayName(name, emailDomain),
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
