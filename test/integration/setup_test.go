package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

// fhirStore is a minimal in-process FHIR REST server: enough of the
// read/search/create/update/delete surface, version-checked updates
// included, to run the gateway flows end to end.
type fhirStore struct {
	mu        sync.Mutex
	resources map[string]map[string]map[string]any
	nextID    int
}

func newFHIRStore() *fhirStore {
	return &fhirStore{resources: map[string]map[string]map[string]any{}}
}

func (s *fhirStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodPost:
		s.create(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.search(w, r, parts[0])
	case len(parts) == 2 && r.Method == http.MethodGet:
		s.read(w, parts[0], parts[1])
	case len(parts) == 2 && r.Method == http.MethodPut:
		s.update(w, r, parts[0], parts[1])
	case len(parts) == 2 && r.Method == http.MethodDelete:
		delete(s.resources[parts[0]], parts[1])
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (s *fhirStore) create(w http.ResponseWriter, r *http.Request, resourceType string) {
	var res map[string]any
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.nextID++
	id := fmt.Sprintf("%s-%d", strings.ToLower(resourceType), s.nextID)
	res["id"] = id
	res["meta"] = map[string]any{"versionId": "1"}
	if s.resources[resourceType] == nil {
		s.resources[resourceType] = map[string]map[string]any{}
	}
	s.resources[resourceType][id] = res
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (s *fhirStore) read(w http.ResponseWriter, resourceType, id string) {
	res, ok := s.resources[resourceType][id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(res)
}

func (s *fhirStore) update(w http.ResponseWriter, r *http.Request, resourceType, id string) {
	current, ok := s.resources[resourceType][id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	version := metaVersion(current)
	if ifMatch := r.Header.Get("If-Match"); ifMatch != "" && ifMatch != `W/"`+version+`"` {
		w.WriteHeader(http.StatusPreconditionFailed)
		return
	}
	var res map[string]any
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	next, _ := strconv.Atoi(version)
	res["id"] = id
	res["meta"] = map[string]any{"versionId": strconv.Itoa(next + 1)}
	s.resources[resourceType][id] = res
	json.NewEncoder(w).Encode(res)
}

func (s *fhirStore) search(w http.ResponseWriter, r *http.Request, resourceType string) {
	q := r.URL.Query()
	var entries []map[string]any
	for _, res := range s.resources[resourceType] {
		if matches(res, q) {
			entries = append(entries, map[string]any{"resource": res})
		}
	}
	if q.Get("_include") == "Encounter:subject" {
		seen := map[string]bool{}
		for _, e := range entries {
			ref := refField(e["resource"].(map[string]any), "subject")
			id := ref[strings.LastIndex(ref, "/")+1:]
			if id == "" || seen[id] {
				continue
			}
			if p, ok := s.resources["Patient"][id]; ok {
				entries = append(entries, map[string]any{"resource": p})
				seen[id] = true
			}
		}
	}
	json.NewEncoder(w).Encode(map[string]any{
		"resourceType": "Bundle",
		"type":         "searchset",
		"entry":        entries,
	})
}

// matches handles the parameters the gateway actually sends; parameters the
// store does not index (dates, chained searches) are ignored, matching the
// lenient behavior of the real server.
func matches(res map[string]any, q map[string][]string) bool {
	for key, values := range q {
		switch key {
		case "url":
			if s, _ := res["url"].(string); s != values[0] {
				return false
			}
		case "subject", "beneficiary":
			if refField(res, key) != values[0] {
				return false
			}
		}
	}
	return true
}

func refField(res map[string]any, field string) string {
	ref, _ := res[field].(map[string]any)
	s, _ := ref["reference"].(string)
	return s
}

func metaVersion(res map[string]any) string {
	meta, _ := res["meta"].(map[string]any)
	v, _ := meta["versionId"].(string)
	return v
}

func newTestClient(t *testing.T) (*fhirclient.Client, *fhirStore) {
	t.Helper()
	store := newFHIRStore()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	return fhirclient.New(srv.URL, "test-token", 5*time.Second, zerolog.Nop()), store
}
