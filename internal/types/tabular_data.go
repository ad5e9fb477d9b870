package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TabularData struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	DataJSON            datatypes.JSON `gorm:"type:jsonb;column:data_json" json:"data_json"`
	DetectedSchema      datatypes.JSON `gorm:"type:jsonb;column:detected_schema" json:"detected_schema"`
	SummaryStats        datatypes.JSON `gorm:"type:jsonb;column:summary_stats" json:"summary_stats"`
	Anomalies           datatypes.JSON `gorm:"type:jsonb;column:anomalies" json:"anomalies"`
	RowCount            int            `gorm:"column:row_count;not null" json:"row_count"`
	ColumnCount         int            `gorm:"column:column_count;not null" json:"column_count"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
}

func (TabularData) TableName() string { return "tabular_data" }
