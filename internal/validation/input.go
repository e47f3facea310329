package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinTitleLength     = 3
	MaxTitleLength     = 200
	MaxReferenceLength = 128
	MaxReasonLength    = 2000
	MaxSkillLength     = 50
	MaxSkillsCount     = 50
	MaxDurationDays    = 3650
	AddressBytesHexLen = 40
)

var (
	addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	hexRefRegex  = regexp.MustCompile(`^(0x)?[0-9a-fA-F]+$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateAddress проверяет формат адреса участника (0x + 40 hex-символов).
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("адрес обязателен")
	}
	if !addressRegex.MatchString(address) {
		return fmt.Errorf("адрес должен иметь формат 0x и %d hex-символов", AddressBytesHexLen)
	}
	return nil
}

// ValidateReference проверяет внешнюю ссылку на контент (hex-хэш документа).
// Само содержимое хранится вне ядра, леджер держит только ссылку.
func ValidateReference(fieldName, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	if utf8.RuneCountInString(ref) > MaxReferenceLength {
		return fmt.Errorf("%s не может быть длиннее %d символов", fieldName, MaxReferenceLength)
	}
	if !hexRefRegex.MatchString(ref) {
		return fmt.Errorf("%s должен быть hex-строкой", fieldName)
	}
	return nil
}

// ValidateTitle проверяет заголовок заказа или милстоуна.
func ValidateTitle(title string) error {
	if err := ValidateNonEmpty("заголовок", title); err != nil {
		return err
	}
	return ValidateLength("заголовок", strings.TrimSpace(title), MinTitleLength, MaxTitleLength)
}

// ValidateSkills проверяет массив навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}

	seen := make(map[string]bool)
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return fmt.Errorf("навык не может быть пустым")
		}
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}

		// Дубликаты без учёта регистра
		skillLower := strings.ToLower(skill)
		if seen[skillLower] {
			return fmt.Errorf("навык '%s' указан дважды", skill)
		}
		seen[skillLower] = true
	}

	return nil
}

// ValidateReason проверяет текст причины спора.
func ValidateReason(reason string) error {
	if err := ValidateNonEmpty("причина спора", reason); err != nil {
		return err
	}
	return ValidateLength("причина спора", strings.TrimSpace(reason), 0, MaxReasonLength)
}

// ValidateDuration проверяет срок исполнения отклика в днях.
func ValidateDuration(days uint64) error {
	if days == 0 {
		return fmt.Errorf("срок исполнения должен быть больше нуля")
	}
	if days > MaxDurationDays {
		return fmt.Errorf("срок исполнения не может превышать %d дней", MaxDurationDays)
	}
	return nil
}
