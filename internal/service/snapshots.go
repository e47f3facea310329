package service

import "github.com/ignatzorin/freelance-escrow/internal/models"

// Сервисы возвращают копии сущностей: указатели внутрь леджера не должны
// покидать блокировку.

func cloneJob(j *models.Job) models.Job {
	c := *j
	c.SkillsRequired = append([]string(nil), j.SkillsRequired...)
	return c
}

func cloneIDs(ids []uint64) []uint64 {
	return append([]uint64(nil), ids...)
}
