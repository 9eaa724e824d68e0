package usecase

import (
	"sync"

	"lashup-client/internal/localstore"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeController holds the persisted light/dark preference. When nothing is
// stored the OS preference hint decides.
type ThemeController struct {
	mu      sync.Mutex
	store   *localstore.Store
	current Theme
}

func NewThemeController(store *localstore.Store, prefersDark bool) *ThemeController {
	t := &ThemeController{store: store, current: ThemeLight}
	if prefersDark {
		t.current = ThemeDark
	}

	var stored Theme
	if store.Get(localstore.KeyTheme, &stored) {
		if stored == ThemeLight || stored == ThemeDark {
			t.current = stored
		}
	}
	return t
}

func (t *ThemeController) Current() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *ThemeController) Toggle() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == ThemeDark {
		t.current = ThemeLight
	} else {
		t.current = ThemeDark
	}
	t.store.Set(localstore.KeyTheme, t.current)
	return t.current
}

func (t *ThemeController) Set(theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = theme
	t.store.Set(localstore.KeyTheme, t.current)
}

// RootClass is the class attribute value consumed by styling.
func (t *ThemeController) RootClass() string {
	return string(t.Current())
}
