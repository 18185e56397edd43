package database

import (
	"certquiz_backend/internal/model"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedQuestion struct {
	Content       string   `yaml:"content"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
}

type seedTopic struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Questions   []seedQuestion `yaml:"questions"`
}

type seedCertification struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Provider    string      `yaml:"provider"`
	Level       string      `yaml:"level"`
	Topics      []seedTopic `yaml:"topics"`
}

type seedFile struct {
	Certifications []seedCertification `yaml:"certifications"`
}

// SeedContent 从 YAML 文件导入认证目录，仅在目录为空时由 InitDB 调用
func SeedContent(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for ci, sc := range sf.Certifications {
			cert := model.Certification{
				ID:          sc.ID,
				Name:        sc.Name,
				Description: sc.Description,
				Provider:    sc.Provider,
				Level:       sc.Level,
				Order:       ci,
				IsActive:    true,
			}
			if err := tx.Create(&cert).Error; err != nil {
				return err
			}

			for ti, st := range sc.Topics {
				topic := model.Topic{
					ID:              st.ID,
					CertificationID: cert.ID,
					Name:            st.Name,
					Description:     st.Description,
					Order:           ti,
					IsActive:        true,
				}
				if err := tx.Create(&topic).Error; err != nil {
					return err
				}

				for qi, sq := range st.Questions {
					question := model.Question{
						TopicID:       topic.ID,
						Content:       sq.Content,
						Options:       sq.Options,
						CorrectAnswer: sq.CorrectAnswer,
						Explanation:   sq.Explanation,
						Order:         qi,
						IsActive:      true,
					}
					if err := tx.Create(&question).Error; err != nil {
						return err
					}
				}
			}
			log.Printf("Seeded certification %s (%d topics)", cert.ID, len(sc.Topics))
		}
		return nil
	})
}
