package glint

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// DefaultStyleCacheSize bounds the process-wide definition cache.
const DefaultStyleCacheSize = 1024

// StyleCache memoizes parsed style definitions. Lookups are served from
// a bounded LRU; concurrent misses for the same definition are
// deduplicated so a definition is parsed at most once at a time.
//
// The zero value is not usable; construct with NewStyleCache. Tests
// that need isolation should use their own instance or call Clear on
// the package-wide DefaultStyleCache.
type StyleCache struct {
	entries *lru.Cache[string, *Style]
	group   singleflight.Group
}

// NewStyleCache returns a cache bounded to size entries, evicting the
// least recently used definition once full.
func NewStyleCache(size int) *StyleCache {
	if size <= 0 {
		size = DefaultStyleCacheSize
	}
	entries, err := lru.New[string, *Style](size)
	if err != nil {
		// lru.New only fails on a non-positive size, which is
		// guarded above.
		panic(err)
	}
	return &StyleCache{entries: entries}
}

// Parse returns the Style for definition, parsing and caching it on
// first use. Identical definitions return the identical *Style for as
// long as the entry survives eviction.
func (c *StyleCache) Parse(definition string) (*Style, error) {
	if s, ok := c.entries.Get(definition); ok {
		return s, nil
	}
	v, err, _ := c.group.Do(definition, func() (any, error) {
		if s, ok := c.entries.Get(definition); ok {
			return s, nil
		}
		s, err := parseStyleDefinition(definition)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		c.entries.Add(definition, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Style), nil
}

// Clear drops all cached definitions. Intended for test isolation.
func (c *StyleCache) Clear() {
	c.entries.Purge()
}

// Len returns the number of cached definitions.
func (c *StyleCache) Len() int {
	return c.entries.Len()
}

// DefaultStyleCache serves package-level ParseStyle calls.
var DefaultStyleCache = NewStyleCache(DefaultStyleCacheSize)

// ParseStyle parses a compact style definition through the process-wide
// cache. The grammar is whitespace-separated tokens:
//
//	bold italic red on blue link https://example.com
//
// Tokens are attribute keywords (bold, dim, italic, underline, blink,
// reverse, conceal, strike), "not <attr>" for an explicit off, a color
// token (see ParseColor), "on <color>" for the background, and
// "link <url>". "none" alone denotes the null style. Unknown or
// contradictory tokens fail with a *StyleSyntaxError.
func ParseStyle(definition string) (*Style, error) {
	return DefaultStyleCache.Parse(definition)
}

// MustParseStyle is ParseStyle, panicking on error. For fixed
// definitions in tests and demos.
func MustParseStyle(definition string) *Style {
	s, err := ParseStyle(definition)
	if err != nil {
		panic(err)
	}
	return s
}
