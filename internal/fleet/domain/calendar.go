package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)
)

// IsValidDate verifica o formato YYYY-MM-DD com ano 2000-2100, mês 1-12 e dia 1-31.
// Não valida dias por mês: as datas só são comparadas como texto.
func IsValidDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// IsValidTime verifica HH:MM entre 00:00 e 23:59.
func IsValidTime(t string) bool {
	return timePattern.MatchString(t)
}

// IsValidID aplica a regra de identificadores digitados: 1 a 20 caracteres,
// sem espaços nem os delimitadores do formato em disco.
func IsValidID(id string) bool {
	return id != "" && len(id) <= 20 && !strings.ContainsAny(id, " \t,\r\n")
}

// MinContactLength é o tamanho mínimo aceito para contato de motorista.
const MinContactLength = 7
