package cache

import "encoding/json"

// GetTyped reads and unmarshals the entry for key into T.
func GetTyped[T any](s *Store, key string) (T, bool) {
	var zero T
	data, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.Delete(key)
		return zero, false
	}
	return v, true
}

// PutTyped marshals v and stores it under key with the default TTL.
func PutTyped[T any](s *Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}
