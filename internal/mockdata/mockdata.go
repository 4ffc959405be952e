// Package mockdata loads the fixed demo dataset that stands in for a real
// deployment backend.
package mockdata

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/five82/deckhand/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

// ErrInvalidDataset is returned when a dataset is internally inconsistent.
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is the decoded, validated seed.
type Dataset struct {
	Apps      []domain.App
	Logs      []domain.LogEntry
	BuildLogs map[string][]string
}

// SuccessTemplate names the build log attached to deploys that complete.
const SuccessTemplate = "success"

type rawDataset struct {
	BuildLogs   map[string][]string `yaml:"build_logs"`
	Apps        []rawApp            `yaml:"apps"`
	RuntimeLogs []rawLog            `yaml:"runtime_logs"`
}

type rawApp struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	Framework      string      `yaml:"framework"`
	Status         string      `yaml:"status"`
	Domain         string      `yaml:"domain"`
	LastDeployTime string      `yaml:"last_deploy_time"`
	EnvVars        []rawEnv    `yaml:"env_vars"`
	Deploys        []rawDeploy `yaml:"deploys"`
}

type rawEnv struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type rawDeploy struct {
	ID               string   `yaml:"id"`
	AppID            string   `yaml:"app_id"`
	Status           string   `yaml:"status"`
	CommitMessage    string   `yaml:"commit_message"`
	SHA              string   `yaml:"sha"`
	Author           string   `yaml:"author"`
	Time             string   `yaml:"time"`
	BuildLog         []string `yaml:"build_log"`
	BuildLogTemplate string   `yaml:"build_log_template"`
}

type rawLog struct {
	Time    string `yaml:"time"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// Load decodes the embedded seed dataset.
func Load() (Dataset, error) {
	return Parse(seedYAML)
}

// LoadFile decodes a dataset from path. An empty path loads the embedded seed.
func LoadFile(path string) (Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (Dataset, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Dataset{}, fmt.Errorf("parse seed: %w", err)
	}

	ds := Dataset{
		Apps:      make([]domain.App, 0, len(raw.Apps)),
		BuildLogs: raw.BuildLogs,
	}
	appIDs := make(map[string]bool, len(raw.Apps))
	deployIDs := make(map[string]bool)

	for _, ra := range raw.Apps {
		app, err := convertApp(ra, raw.BuildLogs)
		if err != nil {
			return Dataset{}, err
		}
		if appIDs[app.ID] {
			return Dataset{}, fmt.Errorf("%w: duplicate app id %q", ErrInvalidDataset, app.ID)
		}
		appIDs[app.ID] = true
		for _, d := range app.Deploys {
			if deployIDs[d.ID] {
				return Dataset{}, fmt.Errorf("%w: duplicate deploy id %q", ErrInvalidDataset, d.ID)
			}
			deployIDs[d.ID] = true
		}
		ds.Apps = append(ds.Apps, app)
	}

	for i, rl := range raw.RuntimeLogs {
		level, err := domain.ParseLogLevel(rl.Level)
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: runtime log %d: %v", ErrInvalidDataset, i, err)
		}
		ds.Logs = append(ds.Logs, domain.LogEntry{Time: rl.Time, Level: level, Message: rl.Message})
	}
	return ds, nil
}

func convertApp(ra rawApp, templates map[string][]string) (domain.App, error) {
	id := strings.TrimSpace(ra.ID)
	if id == "" {
		return domain.App{}, fmt.Errorf("%w: app %q has no id", ErrInvalidDataset, ra.Name)
	}
	framework, err := domain.ParseFramework(ra.Framework)
	if err != nil {
		return domain.App{}, fmt.Errorf("%w: app %s: %v", ErrInvalidDataset, id, err)
	}
	status, err := domain.ParseAppStatus(ra.Status)
	if err != nil {
		return domain.App{}, fmt.Errorf("%w: app %s: %v", ErrInvalidDataset, id, err)
	}
	last, err := parseTime(ra.LastDeployTime)
	if err != nil {
		return domain.App{}, fmt.Errorf("%w: app %s last_deploy_time: %v", ErrInvalidDataset, id, err)
	}

	app := domain.App{
		ID:             id,
		Name:           ra.Name,
		Framework:      framework,
		Status:         status,
		Domain:         ra.Domain,
		LastDeployTime: last,
	}
	for _, ev := range ra.EnvVars {
		app.EnvVars = append(app.EnvVars, domain.EnvVar{Key: ev.Key, Value: ev.Value})
	}
	for _, rd := range ra.Deploys {
		d, err := convertDeploy(id, rd, templates)
		if err != nil {
			return domain.App{}, err
		}
		app.Deploys = append(app.Deploys, d)
	}
	return app, nil
}

func convertDeploy(appID string, rd rawDeploy, templates map[string][]string) (domain.Deploy, error) {
	if strings.TrimSpace(rd.ID) == "" {
		return domain.Deploy{}, fmt.Errorf("%w: app %s has a deploy without id", ErrInvalidDataset, appID)
	}
	owner := strings.TrimSpace(rd.AppID)
	if owner == "" {
		owner = appID
	}
	if owner != appID {
		return domain.Deploy{}, fmt.Errorf("%w: deploy %s belongs to %q but is listed under %q", ErrInvalidDataset, rd.ID, owner, appID)
	}
	status, err := domain.ParseDeployStatus(rd.Status)
	if err != nil {
		return domain.Deploy{}, fmt.Errorf("%w: deploy %s: %v", ErrInvalidDataset, rd.ID, err)
	}
	at, err := parseTime(rd.Time)
	if err != nil {
		return domain.Deploy{}, fmt.Errorf("%w: deploy %s time: %v", ErrInvalidDataset, rd.ID, err)
	}

	buildLog := rd.BuildLog
	if len(buildLog) == 0 && rd.BuildLogTemplate != "" {
		tmpl, ok := templates[rd.BuildLogTemplate]
		if !ok {
			return domain.Deploy{}, fmt.Errorf("%w: deploy %s references unknown build log %q", ErrInvalidDataset, rd.ID, rd.BuildLogTemplate)
		}
		buildLog = tmpl
	}

	return domain.Deploy{
		ID:            rd.ID,
		AppID:         owner,
		Status:        status,
		CommitMessage: rd.CommitMessage,
		SHA:           rd.SHA,
		Author:        rd.Author,
		Time:          at,
		BuildLog:      append([]string(nil), buildLog...),
	}, nil
}

func parseTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}
