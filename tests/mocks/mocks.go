// Package mocks generates plausible GödelOS data for offline development
// and tests. All generators draw from a shared seedable source so a run
// with -mock-seed is reproducible.
package mocks

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

var (
	mu  sync.Mutex
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SeedRandom reseeds all generators. Call before generating when a
// deterministic run is wanted.
func SeedRandom(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(seed))
}

var concepts = []string{
	"analogical reasoning",
	"temporal logic",
	"counterfactual inference",
	"epistemic uncertainty",
	"causal graphs",
	"meta-learning",
	"symbol grounding",
	"abductive explanation",
	"belief revision",
	"compositional semantics",
}

var focusItems = []string{
	"user query parse",
	"goal stack",
	"working memory sweep",
	"contradiction check",
	"plan refinement",
	"attention reallocation",
}

var strategies = []string{"web_search", "knowledge_base", "inference", "experiment"}

var eventContent = map[godel.EventType][]string{
	godel.EventReasoning: {
		"evaluating premise chain for the active goal",
		"backward chaining from conclusion candidate",
		"pruning low-salience branches",
	},
	godel.EventKnowledgeGap: {
		"low confidence detected in concept lookup",
		"missing grounding for referenced entity",
	},
	godel.EventAcquisition: {
		"acquisition plan step completed",
		"ingesting retrieved source into knowledge base",
	},
	godel.EventReflection: {
		"reviewing recent inference quality",
		"adjusting salience weights after feedback",
	},
	godel.EventLearning: {
		"consolidating episodic trace into schema",
		"updating concept embedding",
	},
	godel.EventSynthesis: {
		"composing response from verified fragments",
		"merging partial conclusions",
	},
}

// MockStreamEvents returns n events with descending ages, newest last,
// spaced a few seconds apart ending now.
func MockStreamEvents(n int) []godel.StreamEvent {
	mu.Lock()
	defer mu.Unlock()

	events := make([]godel.StreamEvent, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		et := godel.EventTypes[rng.Intn(len(godel.EventTypes))]
		lines := eventContent[et]
		events = append(events, godel.StreamEvent{
			ID:          fmt.Sprintf("mock-%06d", i),
			Type:        et,
			Granularity: godel.Granularities[rng.Intn(len(godel.Granularities))],
			Content:     lines[rng.Intn(len(lines))],
			Timestamp:   now.Add(-time.Duration(n-i) * 3 * time.Second),
		})
	}
	return events
}

// MockKnowledgeGaps returns n gaps over distinct concepts with mixed
// priorities.
func MockKnowledgeGaps(n int) []godel.KnowledgeGap {
	mu.Lock()
	defer mu.Unlock()
	return mockGapsLocked(n)
}

func mockGapsLocked(n int) []godel.KnowledgeGap {
	if n > len(concepts) {
		n = len(concepts)
	}
	prios := []godel.GapPriority{godel.PriorityHigh, godel.PriorityMedium, godel.PriorityLow}
	gaps := make([]godel.KnowledgeGap, 0, n)
	for i := 0; i < n; i++ {
		gaps = append(gaps, godel.KnowledgeGap{
			Concept:    concepts[i],
			Context:    "triggered during " + focusItems[rng.Intn(len(focusItems))],
			Priority:   prios[rng.Intn(len(prios))],
			Confidence: 0.05 + rng.Float64()*0.6,
			SuggestedSources: []string{
				strategies[rng.Intn(len(strategies))],
			},
		})
	}
	return gaps
}

// MockAcquisitionPlans returns n plans in mixed states.
func MockAcquisitionPlans(n int) []godel.AcquisitionPlan {
	mu.Lock()
	defer mu.Unlock()
	return mockPlansLocked(n)
}

func mockPlansLocked(n int) []godel.AcquisitionPlan {
	statuses := []godel.PlanStatus{godel.PlanActive, godel.PlanActive, godel.PlanCompleted, godel.PlanFailed, godel.PlanPaused}
	plans := make([]godel.AcquisitionPlan, 0, n)
	for i := 0; i < n; i++ {
		st := statuses[rng.Intn(len(statuses))]
		progress := rng.Float64()
		if st == godel.PlanCompleted {
			progress = 1
		}
		plans = append(plans, godel.AcquisitionPlan{
			TargetConcept:     concepts[rng.Intn(len(concepts))],
			Strategy:          strategies[rng.Intn(len(strategies))],
			Status:            st,
			Progress:          progress,
			CreatedAt:         time.Now().Add(-time.Duration(rng.Intn(3600)) * time.Second),
			EstimatedDuration: time.Duration(1+rng.Intn(10)) * time.Minute,
		})
	}
	return plans
}

// MockHealth returns a mostly-healthy backend snapshot with an occasional
// degraded subsystem.
func MockHealth() *godel.HealthStatus {
	mu.Lock()
	defer mu.Unlock()
	return mockHealthLocked()
}

func mockHealthLocked() *godel.HealthStatus {
	subs := map[string]godel.SubsystemStatus{
		"inference":      godel.StatusHealthy,
		"knowledge_base": godel.StatusHealthy,
		"stream":         godel.StatusHealthy,
		"learning":       godel.StatusHealthy,
	}
	overall := godel.StatusHealthy
	if rng.Intn(4) == 0 {
		subs["learning"] = godel.StatusDegraded
		overall = godel.StatusDegraded
	}
	return &godel.HealthStatus{
		Overall:    overall,
		Subsystems: subs,
		CheckedAt:  time.Now(),
	}
}

// MockCognitiveState returns a full snapshot with every section populated.
func MockCognitiveState() godel.CognitiveState {
	mu.Lock()
	defer mu.Unlock()

	nf := 3 + rng.Intn(3)
	focus := make([]godel.FocusItem, 0, nf)
	for i := 0; i < nf; i++ {
		focus = append(focus, godel.FocusItem{
			Item:     focusItems[(i+rng.Intn(len(focusItems)))%len(focusItems)],
			Salience: 0.1 + rng.Float64()*0.9,
		})
	}

	active := mockPlansLocked(2 + rng.Intn(2))
	history := mockPlansLocked(3)
	for i := range history {
		if history[i].Status == godel.PlanActive || history[i].Status == godel.PlanPaused {
			history[i].Status = godel.PlanCompleted
			history[i].Progress = 1
		}
	}

	return godel.CognitiveState{
		Attention: &godel.Attention{Focus: focus, UpdatedAt: time.Now()},
		Load: &godel.ProcessingLoad{
			Load:            0.1 + rng.Float64()*0.8,
			QueueDepth:      rng.Intn(20),
			ActiveProcesses: 1 + rng.Intn(8),
		},
		Learning: &godel.Learning{
			Enabled: true,
			Plans:   active,
			History: history,
		},
		Gaps:      mockGapsLocked(3 + rng.Intn(4)),
		Health:    mockHealthLocked(),
		UpdatedAt: time.Now(),
	}
}
