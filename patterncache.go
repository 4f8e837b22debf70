package jsonstructure

import (
	"regexp"
	"sync"
)

// compiledPattern caches compiled regular expressions keyed by pattern
// string, so a pattern reused across many instances or array items is
// compiled once.
var (
	patternCacheMu sync.RWMutex
	patternCache   = map[string]*regexp.Regexp{}
)

func compiledPattern(pattern string) (*regexp.Regexp, error) {
	patternCacheMu.RLock()
	if re, ok := patternCache[pattern]; ok {
		patternCacheMu.RUnlock()
		return re, nil
	}
	patternCacheMu.RUnlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCacheMu.Lock()
	patternCache[pattern] = re
	patternCacheMu.Unlock()
	return re, nil
}
