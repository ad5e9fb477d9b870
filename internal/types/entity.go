package types

import (
	"time"

	"github.com/google/uuid"
)

// Coarse entity types. Identity is (Name, EntityType), global across all
// documents and versions.
const (
	EntityTypePerson        = "person"
	EntityTypeOrganization  = "organization"
	EntityTypeLocation      = "location"
	EntityTypeMiscellaneous = "miscellaneous"
)

type Entity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null;uniqueIndex:idx_entities_name_type" json:"name"`
	EntityType string    `gorm:"column:entity_type;not null;uniqueIndex:idx_entities_name_type" json:"entity_type"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Entity) TableName() string { return "entities" }

type EntityMention struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	ChunkID             uuid.UUID `gorm:"type:uuid;not null;index" json:"chunk_id"`
	EntityID            uuid.UUID `gorm:"type:uuid;not null;index" json:"entity_id"`
	MentionedText       string    `gorm:"column:mentioned_text" json:"mentioned_text"`
	Confidence          int       `gorm:"column:confidence" json:"confidence"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (EntityMention) TableName() string { return "entity_mentions" }

type Relationship struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	SourceEntityID      uuid.UUID `gorm:"type:uuid;not null;index" json:"source_entity_id"`
	TargetEntityID      uuid.UUID `gorm:"type:uuid;not null;index" json:"target_entity_id"`
	RelationshipType    string    `gorm:"column:relationship_type;not null" json:"relationship_type"`
	ContextSnippet      string    `gorm:"column:context_snippet" json:"context_snippet"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (Relationship) TableName() string { return "relationships" }
