package local

import (
	"maps"
	"slices"
	"sync"

	"github.com/vmunix/mediaimport/internal/host"
)

// Settings is the settings storage of one provider or import. Values are
// persisted; callbacks, options and the loaded flag live as long as the
// object.
type Settings struct {
	store *Store
	scope string
	owner string

	mu        sync.Mutex
	actions   map[string]string
	fillers   map[string]string
	options   map[string][]host.Option
	loaded    bool
	lastError error
}

var _ host.Settings = (*Settings)(nil)

func newSettings(store *Store, scope, owner string) *Settings {
	return &Settings{
		store:   store,
		scope:   scope,
		owner:   owner,
		actions: make(map[string]string),
		fillers: make(map[string]string),
		options: make(map[string][]host.Option),
	}
}

// GetString returns the stored value, "" when unset or unreadable.
func (s *Settings) GetString(key string) string {
	value, err := s.store.GetSetting(s.scope, s.owner, key)
	if err != nil {
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		return ""
	}
	return value
}

// SetString persists a value.
func (s *Settings) SetString(key, value string) error {
	return s.store.SetSetting(s.scope, s.owner, key, value)
}

// SetStringOptions sets the options offered for a setting.
func (s *Settings) SetStringOptions(key string, options []host.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[key] = slices.Clone(options)
	return nil
}

// RegisterActionCallback binds a setting to a dispatcher action.
func (s *Settings) RegisterActionCallback(settingID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[settingID] = action
	return nil
}

// RegisterOptionsFillerCallback binds a setting's options to a dispatcher action.
func (s *Settings) RegisterOptionsFillerCallback(settingID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fillers[settingID] = action
	return nil
}

// SetLoaded marks the settings as fully loaded.
func (s *Settings) SetLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

// Loaded reports whether SetLoaded was called.
func (s *Settings) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Options returns the options set for key.
func (s *Settings) Options(key string) []host.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.options[key])
}

// ActionCallbacks returns the registered setting -> action bindings.
func (s *Settings) ActionCallbacks() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.actions)
}

// OptionsFillers returns the registered setting -> options filler bindings.
func (s *Settings) OptionsFillers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.fillers)
}

// Err returns the last read error swallowed by GetString.
func (s *Settings) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
