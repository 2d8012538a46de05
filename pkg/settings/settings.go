// Package settings keeps user-editable state: saved provider channels and the active config,
// per-domain style overrides, custom style and strategy catalogs and the generation panel settings.
// Every change is written through to the store.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/style"
)

// storage keys
const (
	configKey           = "config"
	channelsKey         = "savedChannels"
	activeChannelKey    = "activeChannelId"
	domainStylesKey     = "domainStyles"
	customStylesKey     = "customStyles"
	customStrategiesKey = "customStrategies"
	genSettingsKey      = "genSettings"
)

const (
	customStylePrefix    = "custom_style_"
	customStrategyPrefix = "custom_strategy_"
)

// errors returned by Manager
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrOptionNotFound  = errors.New("custom option not found")
	ErrEmptyName       = errors.New("name is empty")
	ErrUnknownModel    = errors.New("model is not in the model list")
)

// Store is the durable key/value storage
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Manager holds settings in memory and persists every change
type Manager struct {
	store    Store
	defaults domain.Config
	now      func() time.Time

	mu               sync.Mutex
	config           domain.Config
	channels         []domain.Channel
	activeID         string
	overrides        map[string]domain.DomainStyle
	customStyles     []domain.Option
	customStrategies []domain.Option
	gen              domain.GenSettings
	lastCustomID     int64
}

// New makes a Manager. defaults is the config used until a config is saved or a channel
// activated, zero fields are taken from domain.DefaultConfig.
func New(store Store, defaults domain.Config) *Manager {
	base := domain.DefaultConfig()
	if defaults.RequestFormat != "" {
		base.RequestFormat = defaults.RequestFormat
	}
	if defaults.APIBaseURL != "" {
		base.APIBaseURL = defaults.APIBaseURL
	}
	if defaults.APIKey != "" {
		base.APIKey = defaults.APIKey
	}
	if defaults.Model != "" {
		base.Model = defaults.Model
	}
	if len(defaults.ModelList) > 0 {
		base.ModelList = defaults.ModelList
	}
	if defaults.Persona != "" {
		base.Persona = defaults.Persona
	}
	base.AutoSend = defaults.AutoSend
	base = base.Normalize()

	return &Manager{
		store:     store,
		defaults:  base,
		now:       time.Now,
		config:    base,
		overrides: map[string]domain.DomainStyle{},
		gen:       domain.DefaultGenSettings(),
	}
}

// Load restores all settings from the store, missing keys keep their defaults
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := m.defaults
	if _, err := m.store.Get(ctx, configKey, &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	m.config = cfg.Normalize()

	targets := []struct {
		key string
		dst any
	}{
		{channelsKey, &m.channels},
		{activeChannelKey, &m.activeID},
		{domainStylesKey, &m.overrides},
		{customStylesKey, &m.customStyles},
		{customStrategiesKey, &m.customStrategies},
		{genSettingsKey, &m.gen},
	}
	for _, t := range targets {
		if _, err := m.store.Get(ctx, t.key, t.dst); err != nil {
			return fmt.Errorf("load %s: %w", t.key, err)
		}
	}
	if m.overrides == nil {
		m.overrides = map[string]domain.DomainStyle{}
	}
	if m.gen.Count <= 0 {
		m.gen.Count = domain.DefaultGenSettings().Count
	}
	for _, o := range append(append([]domain.Option{}, m.customStyles...), m.customStrategies...) {
		if n := customSeq(o.ID); n > m.lastCustomID {
			m.lastCustomID = n
		}
	}

	lgr.Printf("[DEBUG] settings loaded, %d channels, active %q, model %s", len(m.channels), m.activeID, m.config.Model)
	return nil
}

// Active returns the effective provider config
func (m *Manager) Active() domain.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := m.config
	res.ModelList = append([]string(nil), m.config.ModelList...)
	return res
}

// SetSession updates the session fields of the effective config, persona is kept when empty
func (m *Manager) SetSession(ctx context.Context, persona string, autoSend bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if persona != "" {
		m.config.Persona = persona
	}
	m.config.AutoSend = autoSend
	if err := m.store.Set(ctx, configKey, m.config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Channels returns saved channels in insertion order
func (m *Manager) Channels() []domain.Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.Channel, len(m.channels))
	copy(res, m.channels)
	return res
}

// ActiveChannelID returns the id of the active channel, empty if none
func (m *Manager) ActiveChannelID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// SaveChannel adds a new channel or replaces the one with the same id. A channel without id gets
// a new uuid, a missing request format is derived from the model. Saving the active channel
// rebuilds the effective config from it.
func (m *Manager) SaveChannel(ctx context.Context, ch domain.Channel) (domain.Channel, error) {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	if !ch.RequestFormat.Valid() {
		ch.RequestFormat = domain.FormatForModel(ch.Model)
	}
	ch.APIBaseURL = strings.TrimRight(ch.APIBaseURL, "/")

	m.mu.Lock()
	defer m.mu.Unlock()
	replaced := false
	for i := range m.channels {
		if m.channels[i].ID == ch.ID {
			m.channels[i] = ch
			replaced = true
			break
		}
	}
	if !replaced {
		m.channels = append(m.channels, ch)
	}
	if err := m.store.Set(ctx, channelsKey, m.channels); err != nil {
		return ch, fmt.Errorf("save channels: %w", err)
	}
	if ch.ID == m.activeID {
		m.applyChannel(ch)
		if err := m.store.Set(ctx, configKey, m.config); err != nil {
			return ch, fmt.Errorf("save config: %w", err)
		}
	}
	lgr.Printf("[INFO] channel %q saved, format %s, model %s", ch.Name, ch.RequestFormat, ch.Model)
	return ch, nil
}

// DeleteChannel removes a channel, the active channel id is cleared when it points to it.
// The effective config stays as it was.
func (m *Manager) DeleteChannel(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.channelIndex(id)
	if idx < 0 {
		return fmt.Errorf("delete channel %s: %w", id, ErrChannelNotFound)
	}
	m.channels = append(m.channels[:idx], m.channels[idx+1:]...)
	if err := m.store.Set(ctx, channelsKey, m.channels); err != nil {
		return fmt.Errorf("save channels: %w", err)
	}
	if m.activeID == id {
		m.activeID = ""
		if err := m.store.Set(ctx, activeChannelKey, m.activeID); err != nil {
			return fmt.Errorf("save active channel: %w", err)
		}
	}
	return nil
}

// Activate makes the channel active and rebuilds the effective config from the defaults
// and the channel fields, session fields (persona, auto send) are kept.
func (m *Manager) Activate(ctx context.Context, id string) (domain.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.channelIndex(id)
	if idx < 0 {
		return domain.Config{}, fmt.Errorf("activate channel %s: %w", id, ErrChannelNotFound)
	}
	m.applyChannel(m.channels[idx])
	m.activeID = id

	if err := m.store.Set(ctx, activeChannelKey, m.activeID); err != nil {
		return m.config, fmt.Errorf("save active channel: %w", err)
	}
	if err := m.store.Set(ctx, configKey, m.config); err != nil {
		return m.config, fmt.Errorf("save config: %w", err)
	}
	lgr.Printf("[INFO] channel %q activated, model %s", m.channels[idx].Name, m.config.Model)
	return m.config, nil
}

// SelectModel switches the effective config to another model of its model list.
// The active channel, if any, gets the same model.
func (m *Manager) SelectModel(ctx context.Context, model string) (domain.Config, error) {
	model = strings.TrimSpace(model)
	m.mu.Lock()
	defer m.mu.Unlock()

	known := false
	for _, mdl := range m.config.ModelList {
		if mdl == model {
			known = true
			break
		}
	}
	if model == "" || !known {
		return m.config, fmt.Errorf("select model %q: %w", model, ErrUnknownModel)
	}

	m.config.Model = model
	if err := m.store.Set(ctx, configKey, m.config); err != nil {
		return m.config, fmt.Errorf("save config: %w", err)
	}
	if idx := m.channelIndex(m.activeID); idx >= 0 {
		m.channels[idx].Model = model
		if err := m.store.Set(ctx, channelsKey, m.channels); err != nil {
			return m.config, fmt.Errorf("save channels: %w", err)
		}
	}
	lgr.Printf("[INFO] switched to model %s", model)
	return m.config, nil
}

// applyChannel rebuilds the effective config from the defaults and the channel,
// session fields are kept, caller holds the lock
func (m *Manager) applyChannel(ch domain.Channel) {
	base := m.defaults
	base.Persona, base.AutoSend = m.config.Persona, m.config.AutoSend
	m.config = base.WithChannel(ch)
}

func (m *Manager) channelIndex(id string) int {
	for i, ch := range m.channels {
		if ch.ID == id {
			return i
		}
	}
	return -1
}

// DomainStyle returns the effective style of a domain, the override merged over the built-in default
func (m *Manager) DomainStyle(domainID string) domain.DomainStyle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return style.Resolve(domainID, m.overrides, catalog.DefaultDomainStyles)
}

// Overrides returns a copy of the stored domain overrides
func (m *Manager) Overrides() map[string]domain.DomainStyle {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]domain.DomainStyle, len(m.overrides))
	for k, v := range m.overrides {
		res[k] = v
	}
	return res
}

// SaveDomainStyle merges non-empty fields of s over the current effective style of the domain
// and stores the result as its override
func (m *Manager) SaveDomainStyle(ctx context.Context, domainID string, s domain.DomainStyle) (domain.DomainStyle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := style.Merge(style.Resolve(domainID, m.overrides, catalog.DefaultDomainStyles), s)
	m.overrides[domainID] = merged
	if err := m.store.Set(ctx, domainStylesKey, m.overrides); err != nil {
		return merged, fmt.Errorf("save domain styles: %w", err)
	}
	return merged, nil
}

// ResetDomainStyle removes the domain override, the built-in default applies again
func (m *Manager) ResetDomainStyle(ctx context.Context, domainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, domainID)
	if err := m.store.Set(ctx, domainStylesKey, m.overrides); err != nil {
		return fmt.Errorf("save domain styles: %w", err)
	}
	return nil
}

// Styles returns built-in styles followed by custom ones
func (m *Manager) Styles() []domain.Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(append([]domain.Option{}, catalog.Styles...), m.customStyles...)
}

// Strategies returns built-in strategies followed by custom ones
func (m *Manager) Strategies() []domain.Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(append([]domain.Option{}, catalog.Strategies...), m.customStrategies...)
}

// CustomStyles returns only the user-defined styles
func (m *Manager) CustomStyles() []domain.Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Option(nil), m.customStyles...)
}

// CustomStrategies returns only the user-defined strategies
func (m *Manager) CustomStrategies() []domain.Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Option(nil), m.customStrategies...)
}

// AddCustomStyle adds a user-defined style, its name is used as the prompt instruction
func (m *Manager) AddCustomStyle(ctx context.Context, name string) (domain.Option, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Option{}, ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	opt := domain.Option{ID: customStylePrefix + m.nextCustomID(), Name: name, Custom: true}
	m.customStyles = append(m.customStyles, opt)
	if err := m.store.Set(ctx, customStylesKey, m.customStyles); err != nil {
		return opt, fmt.Errorf("save custom styles: %w", err)
	}
	return opt, nil
}

// AddCustomStrategy adds a user-defined strategy with the name as its description
func (m *Manager) AddCustomStrategy(ctx context.Context, name string) (domain.Option, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Option{}, ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	opt := domain.Option{ID: customStrategyPrefix + m.nextCustomID(), Name: name, Desc: name, Custom: true}
	m.customStrategies = append(m.customStrategies, opt)
	if err := m.store.Set(ctx, customStrategiesKey, m.customStrategies); err != nil {
		return opt, fmt.Errorf("save custom strategies: %w", err)
	}
	return opt, nil
}

// RemoveCustomStyle deletes a user-defined style
func (m *Manager) RemoveCustomStyle(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := without(m.customStyles, id)
	if !ok {
		return fmt.Errorf("remove style %s: %w", id, ErrOptionNotFound)
	}
	m.customStyles = res
	if err := m.store.Set(ctx, customStylesKey, m.customStyles); err != nil {
		return fmt.Errorf("save custom styles: %w", err)
	}
	return nil
}

// RemoveCustomStrategy deletes a user-defined strategy
func (m *Manager) RemoveCustomStrategy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := without(m.customStrategies, id)
	if !ok {
		return fmt.Errorf("remove strategy %s: %w", id, ErrOptionNotFound)
	}
	m.customStrategies = res
	if err := m.store.Set(ctx, customStrategiesKey, m.customStrategies); err != nil {
		return fmt.Errorf("save custom strategies: %w", err)
	}
	return nil
}

// GenSettings returns the last used generation panel settings
func (m *Manager) GenSettings() domain.GenSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// SaveGenSettings merges non-zero fields of s over the current settings and persists them
func (m *Manager) SaveGenSettings(ctx context.Context, s domain.GenSettings) (domain.GenSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Count > 0 {
		m.gen.Count = s.Count
	}
	if s.Length != "" {
		m.gen.Length = s.Length
	}
	if s.Style != "" {
		m.gen.Style = s.Style
	}
	if s.Strategy != "" {
		m.gen.Strategy = s.Strategy
	}
	if s.Lang != "" {
		m.gen.Lang = s.Lang
	}
	if err := m.store.Set(ctx, genSettingsKey, m.gen); err != nil {
		return m.gen, fmt.Errorf("save generation settings: %w", err)
	}
	return m.gen, nil
}

// Flush persists everything
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := []struct {
		key string
		val any
	}{
		{configKey, m.config},
		{channelsKey, m.channels},
		{activeChannelKey, m.activeID},
		{domainStylesKey, m.overrides},
		{customStylesKey, m.customStyles},
		{customStrategiesKey, m.customStrategies},
		{genSettingsKey, m.gen},
	}
	for _, v := range values {
		if err := m.store.Set(ctx, v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// nextCustomID returns a millisecond based id suffix, strictly increasing; caller holds the lock
func (m *Manager) nextCustomID() string {
	n := m.now().UnixMilli()
	if n <= m.lastCustomID {
		n = m.lastCustomID + 1
	}
	m.lastCustomID = n
	return strconv.FormatInt(n, 10)
}

// customSeq extracts the numeric suffix of a custom option id, 0 if there is none
func customSeq(id string) int64 {
	for _, p := range []string{customStylePrefix, customStrategyPrefix} {
		if s, ok := strings.CutPrefix(id, p); ok {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}

func without(opts []domain.Option, id string) ([]domain.Option, bool) {
	res := make([]domain.Option, 0, len(opts))
	found := false
	for _, o := range opts {
		if o.ID == id {
			found = true
			continue
		}
		res = append(res, o)
	}
	return res, found
}
