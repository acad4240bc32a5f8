package keys

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// LayoutContext exposes the live keyboard layout state the resolver reads.
// Implementations capture whatever snapshot they need (layout handle, key
// state vector) at call time; callers must invoke them on the thread that
// received the event.
type LayoutContext interface {
	// ToUnicode translates the key the way a normal keystroke would under the
	// current layout and key state. It reports false when nothing printable
	// results (dead keys, unmapped keys, failed OS calls).
	ToUnicode(vk VirtualKey, scan ScanCode) (string, bool)
	// KeyNameText returns the layout's textual name for a scan code.
	KeyNameText(scan ScanCode, extended bool) (string, bool)
}

// Stage identifies which resolution strategy produced a name.
type Stage string

const (
	StageCatalog     Stage = "catalog"
	StageTranslate   Stage = "translate"
	StageNameText    Stage = "name_text"
	StagePlaceholder Stage = "placeholder"
)

// Strategy is one step of the fallback chain.
type Strategy interface {
	Stage() Stage
	Resolve(vk VirtualKey, scan ScanCode) (string, bool)
}

// Resolution reports a resolved name and the stage that produced it.
type Resolution struct {
	Name  string `json:"name"`
	Stage Stage  `json:"stage"`
}

// Resolver maps (virtual key, scan code) pairs to display names by walking
// an ordered strategy list. It keeps no state between calls.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the standard chain: catalog, layout translation, key
// name text. A nil layout leaves only the catalog stage in front of the
// placeholder.
func NewResolver(layout LayoutContext) *Resolver {
	if layout == nil {
		return NewResolverWith(CatalogStrategy{})
	}
	return NewResolverWith(
		CatalogStrategy{},
		TranslateStrategy{Layout: layout},
		NameTextStrategy{Layout: layout},
	)
}

// NewResolverWith builds a resolver over a custom strategy order. The
// placeholder stage always runs last and is not part of the list.
func NewResolverWith(strategies ...Strategy) *Resolver {
	chain := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return &Resolver{strategies: chain}
}

// Resolve returns the best available name for the key. It never returns an
// empty string.
func (r *Resolver) Resolve(vk VirtualKey, scan ScanCode) string {
	return r.Explain(vk, scan).Name
}

// Explain is Resolve plus the stage that produced the name.
func (r *Resolver) Explain(vk VirtualKey, scan ScanCode) Resolution {
	if r != nil {
		for _, s := range r.strategies {
			if name, ok := s.Resolve(vk, scan); ok && name != "" {
				return Resolution{Name: name, Stage: s.Stage()}
			}
		}
	}
	return Resolution{Name: placeholder(vk), Stage: StagePlaceholder}
}

// Stages lists the configured stages in evaluation order, placeholder last.
func (r *Resolver) Stages() []Stage {
	if r == nil {
		return []Stage{StagePlaceholder}
	}
	stages := make([]Stage, 0, len(r.strategies)+1)
	for _, s := range r.strategies {
		stages = append(stages, s.Stage())
	}
	return append(stages, StagePlaceholder)
}

// CatalogStrategy resolves through the static key catalog.
type CatalogStrategy struct{}

func (CatalogStrategy) Stage() Stage { return StageCatalog }

func (CatalogStrategy) Resolve(vk VirtualKey, _ ScanCode) (string, bool) {
	return Lookup(vk)
}

// TranslateStrategy asks the layout for the characters the keystroke
// produces. Results are NFC normalized so a base letter plus combining mark
// reads as one character.
type TranslateStrategy struct {
	Layout LayoutContext
}

func (TranslateStrategy) Stage() Stage { return StageTranslate }

func (s TranslateStrategy) Resolve(vk VirtualKey, scan ScanCode) (string, bool) {
	if s.Layout == nil {
		return "", false
	}
	text, ok := s.Layout.ToUnicode(vk, scan)
	if !ok || text == "" {
		return "", false
	}
	return norm.NFC.String(text), true
}

// nameTextExtended is the extended-key bit passed to KeyNameText. It is
// fixed rather than derived from the event, so right-hand modifiers and the
// navigation cluster are looked up exactly like every other key.
const nameTextExtended = true

// NameTextStrategy asks the layout for the textual name of the scan code.
type NameTextStrategy struct {
	Layout LayoutContext
}

func (NameTextStrategy) Stage() Stage { return StageNameText }

func (s NameTextStrategy) Resolve(_ VirtualKey, scan ScanCode) (string, bool) {
	if s.Layout == nil {
		return "", false
	}
	name, ok := s.Layout.KeyNameText(scan, nameTextExtended)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

var placeholders = func() [256]string {
	var table [256]string
	for i := range table {
		table[i] = fmt.Sprintf("VK_%02X", i)
	}
	return table
}()

// placeholder synthesises the terminal fallback name, e.g. "VK_FF".
func placeholder(vk VirtualKey) string {
	if int(vk) < len(placeholders) {
		return placeholders[vk]
	}
	return fmt.Sprintf("VK_%02X", uint16(vk))
}
