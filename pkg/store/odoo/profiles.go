package odoo

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

// Profile holds the connection settings of one ERP database.
type Profile struct {
	Name     string `validate:"required"`
	URL      string `ini:"url" validate:"required,url"`
	Database string `ini:"db" validate:"required"`
	Username string `ini:"username" validate:"required"`
	Password string `ini:"password" validate:"required"`
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg      *ini.File
	validate *validator.Validate
}

// NewRegistry loads an INI file where every section is a profile:
//
//	[test]
//	url      = https://erp.example.com
//	db       = company-test
//	username = reports@example.com
//	password = secret
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg, validate: validator.New()}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	if !cr.cfg.HasSection(name) {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	profile := &Profile{Name: name}
	if err := cr.cfg.Section(name).MapTo(profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	if err := cr.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", name, err)
	}
	return profile, nil
}
