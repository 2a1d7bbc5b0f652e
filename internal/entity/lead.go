package entity

import (
	"time"
)

// Stage é a posição do lead no funil de vendas.
// Qualquer stage pode transicionar para qualquer outro (um lead
// perdido pode ser reaberto), então não validamos ordem de progressão.
type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageConverted Stage = "converted"
	StageLost      Stage = "lost"
)

// Stages na ordem de exibição do funil.
var Stages = []Stage{StageNew, StageContacted, StageConverted, StageLost}

func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageConverted, StageLost:
		return true
	}
	return false
}

type Lead struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"lead_source,omitempty"`
	Stage     Stage     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
