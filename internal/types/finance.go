package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FinancialKPI struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	KPIName             string    `gorm:"column:kpi_name;not null" json:"kpi_name"`
	KPIValue            float64   `gorm:"column:kpi_value;not null" json:"kpi_value"`
	KPICurrency         string    `gorm:"column:kpi_currency;not null" json:"kpi_currency"`
	Period              *string   `gorm:"column:period" json:"period"`
	SourceSnippet       string    `gorm:"column:source_snippet" json:"source_snippet"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (FinancialKPI) TableName() string { return "financial_kpis" }

type FinancialRiskAnalysis struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	RiskLevel           string         `gorm:"column:risk_level;not null" json:"risk_level"`
	Confidence          int            `gorm:"column:confidence" json:"confidence"`
	Summary             string         `gorm:"column:summary" json:"summary"`
	IdentifiedClauses   datatypes.JSON `gorm:"type:jsonb;column:identified_clauses" json:"identified_clauses"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
}

func (FinancialRiskAnalysis) TableName() string { return "financial_risk_analysis" }
