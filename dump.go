package tracelog

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Dump logs the contents of v at Debug level through the global pipeline
// installed by Init. Before Init, or after the guard is closed, it is a
// no-op.
func Dump(v interface{}) {
	if svc := globalService.Load(); svc != nil {
		svc.Dump(v)
	}
}

// Dump logs the contents of the provided value at Debug level.
// Structs are walked field by field (exported only), maps and slices
// element by element, and basic types are printed directly. Cycles and
// excessive nesting are cut off.
func (s *Service) Dump(v interface{}) {
	if s == nil || !s.isInitialized.Load() {
		return
	}

	s.activeOps.Add(1)
	s.wg.Add(1)
	defer func() {
		s.activeOps.Add(-1)
		s.wg.Done()
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Double-check after acquiring lock
	if !s.isInitialized.Load() {
		return
	}

	logger := s.logger.Load()
	if logger == nil {
		return
	}

	if v == nil {
		logger.Debug().Msg("Dump: <nil>")
		return
	}

	visited := make(map[uintptr]bool)
	s.dumpValue(logger, v, "", visited, 0)
}

const maxDumpDepth = 10

func (s *Service) dumpValue(logger *zerolog.Logger, v interface{}, prefix string, visited map[uintptr]bool, depth int) {
	if depth > maxDumpDepth {
		logger.Debug().Msgf("%s: <max depth reached>", prefix)
		return
	}

	if v == nil {
		logger.Debug().Msgf("%s: <nil>", prefix)
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers with cycle detection. Pointer() is
	// only legal on a subset of kinds, hence the explicit switch.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				logger.Debug().Msgf("%s: <nil>", prefix)
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				logger.Debug().Msgf("%s: <nil>", prefix)
				return
			}
			// Marking happens below through the addressable element, so a
			// plain pointer is not its own cycle.
			if visited[val.Pointer()] {
				logger.Debug().Msgf("%s: <circular reference>", prefix)
				return
			}
			val = val.Elem()
		default:
		}
		break
	}

	typ := val.Type()

	// Addressable values reachable through multiple references also need
	// cycle marking, not just pointers.
	if val.CanAddr() {
		addrPtr := val.Addr().Pointer()
		if visited[addrPtr] {
			logger.Debug().Msgf("%s: <circular reference>", prefix)
			return
		}
		visited[addrPtr] = true
	}

	switch val.Kind() {
	case reflect.Struct:
		structName := typ.Name()
		if prefix == "" {
			logger.Debug().Msgf("Struct: %s", structName)
		} else {
			logger.Debug().Msgf("%s: %s {", prefix, structName)
		}

		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)

			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}

			fieldPrefix := field.Name
			if prefix != "" {
				fieldPrefix = prefix + "." + field.Name
			}

			s.dumpValue(logger, fieldVal.Interface(), fieldPrefix, visited, depth+1)
		}

		if prefix != "" {
			logger.Debug().Msgf("%s: }", prefix)
		}

	case reflect.Map:
		logger.Debug().Msgf("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len())

		iter := val.MapRange()
		for iter.Next() {
			k := iter.Key()
			vv := iter.Value()

			keyStr := fmt.Sprintf("%v", k.Interface())
			mapPrefix := prefix + "[" + keyStr + "]"

			s.dumpValue(logger, vv.Interface(), mapPrefix, visited, depth+1)
		}

		logger.Debug().Msgf("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		logger.Debug().Msgf("%s: %s (len: %d, cap: %d) {",
			prefix, typ.String(), val.Len(), val.Cap())

		// Cap output for large slices/arrays
		maxElements := 10
		for i := 0; i < val.Len() && i < maxElements; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			elem := val.Index(i)
			if elem.CanInterface() {
				s.dumpValue(logger, elem.Interface(), elemPrefix, visited, depth+1)
			} else {
				s.dumpValue(logger, reflect.New(elem.Type()).Elem().Interface(), elemPrefix, visited, depth+1)
			}
		}

		if val.Len() > maxElements {
			logger.Debug().Msgf("%s: ... (%d more elements)", prefix, val.Len()-maxElements)
		}

		logger.Debug().Msgf("%s: }", prefix)

	default:
		if val.IsValid() && val.CanInterface() {
			logger.Debug().Msgf("%s: %v", prefix, val.Interface())
		} else {
			logger.Debug().Msgf("%s: %v", prefix, v)
		}
	}
}
