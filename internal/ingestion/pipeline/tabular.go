package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/ingestion/tabular"
	"github.com/yungbote/docsense-backend/internal/types"
)

// processTabular is the short path for spreadsheets: parse, profile, persist
// one tabular_data row and mark the version tabular-processed. No chunking or
// model calls happen here.
func (p *Pipeline) processTabular(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fileName string, content []byte) error {
	result, err := tabular.Process(fileName, content)
	if err != nil {
		return fmt.Errorf("tabular parse: %w", err)
	}

	dataJSON, err := json.Marshal(result.Records)
	if err != nil {
		return err
	}
	schemaJSON, err := json.Marshal(result.Schema)
	if err != nil {
		return err
	}
	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		return err
	}
	anomaliesJSON, err := json.Marshal(result.Anomalies)
	if err != nil {
		return err
	}

	err = p.repos.TabularData.Create(ctx, tx, &types.TabularData{
		ID:                  uuid.New(),
		ProcessingVersionID: versionID,
		DataJSON:            datatypes.JSON(dataJSON),
		DetectedSchema:      datatypes.JSON(schemaJSON),
		SummaryStats:        datatypes.JSON(statsJSON),
		Anomalies:           datatypes.JSON(anomaliesJSON),
		RowCount:            result.RowCount,
		ColumnCount:         result.ColumnCount,
	})
	if err != nil {
		return fmt.Errorf("persist tabular data: %w", err)
	}

	return p.repos.ProcessingVersions.UpdateStatus(ctx, tx, versionID, types.StatusProcessedTabular)
}
