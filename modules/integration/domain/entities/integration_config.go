package entities

import (
	"gitscribe/seedwork/domain"
)

// Platform identifies an external task-tracking or messaging destination
// (spec.md §4.8 IntegrationClients).
type Platform string

const (
	Notion  Platform = "notion"
	ClickUp Platform = "clickup"
	Slack   Platform = "slack"
)

// IntegrationConfig holds one platform's credentials/settings. Unlike the
// teacher's user-scoped IntegrationConfig, there is no UserID: authentication
// and tenant isolation are explicit non-goals, so configuration is
// per-process rather than per-account. ProcessingJob is not duplicated here;
// the canonical definition lives in seedwork/domain/entities.
type IntegrationConfig struct {
	domain.BaseEntity
	Platform Platform               `json:"platform" gorm:"column:platform;uniqueIndex;not null"`
	Config   map[string]interface{} `json:"config" gorm:"column:config;serializer:json;not null"`
	IsActive bool                   `json:"is_active" gorm:"column:is_active;default:true"`
}

func NewIntegrationConfig(platform Platform, config map[string]interface{}) IntegrationConfig {
	if config == nil {
		config = make(map[string]interface{})
	}
	ic := IntegrationConfig{
		Platform: platform,
		Config:   config,
		IsActive: true,
	}
	ic.SetID(domain.GenerateID())
	return ic
}

func (ic *IntegrationConfig) Activate()   { ic.IsActive = true }
func (ic *IntegrationConfig) Deactivate() { ic.IsActive = false }

func (ic *IntegrationConfig) UpdateConfig(config map[string]interface{}) {
	if config != nil {
		ic.Config = config
	}
}

func (ic *IntegrationConfig) GetConfigValue(key string) (interface{}, bool) {
	if ic.Config == nil {
		return nil, false
	}
	v, ok := ic.Config[key]
	return v, ok
}

func (ic *IntegrationConfig) SetConfigValue(key string, value interface{}) {
	if ic.Config == nil {
		ic.Config = make(map[string]interface{})
	}
	ic.Config[key] = value
}

// Validate checks for a known platform with non-empty config. Activate does
// not call it.
func (ic *IntegrationConfig) Validate() error {
	switch ic.Platform {
	case Notion, ClickUp, Slack:
	default:
		return domain.NewDomainError(domain.CodeInput, "unknown integration platform", nil)
	}
	if len(ic.Config) == 0 {
		return domain.NewDomainError(domain.CodeInput, "integration config cannot be empty", nil)
	}
	return nil
}

func (IntegrationConfig) TableName() string {
	return "integration_configs"
}
