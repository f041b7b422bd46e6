package scenario

import "sort"

// DefaultKey is the profile used when a requested key is not registered
const DefaultKey = "standard"

// Profile is a named bundle of workload generation parameters
type Profile struct {
	Key            string  `json:"key" yaml:"key"`
	Label          string  `json:"label" yaml:"label"`
	Description    string  `json:"description" yaml:"description"`
	MinDuration    int     `json:"min_duration" yaml:"minDuration"`
	MaxDuration    int     `json:"max_duration" yaml:"maxDuration"`
	TaskMultiplier float64 `json:"task_multiplier" yaml:"taskMultiplier"`
	BeltSpeed      float64 `json:"belt_speed" yaml:"beltSpeed"`
	Color          string  `json:"color" yaml:"color"`
	// QueueBias is carried through to the result metrics. No allocator reads it.
	QueueBias float64 `json:"queue_bias" yaml:"queueBias"`
}

var builtin = []Profile{
	{
		Key:            "standard",
		Label:          "Balanced Ops",
		Description:    "Classic operations floor where inflow roughly matches processing capacity.",
		MinDuration:    2,
		MaxDuration:    8,
		TaskMultiplier: 1.0,
		BeltSpeed:      1.0,
		Color:          "#4caf50",
	},
	{
		Key:            "focus",
		Label:          "Deep Work Pods",
		Description:    "Fewer high-impact, longer tasks that test endurance instead of volume.",
		MinDuration:    5,
		MaxDuration:    12,
		TaskMultiplier: 0.65,
		BeltSpeed:      0.6,
		Color:          "#2196f3",
	},
	{
		Key:            "lucy",
		Label:          "Workload Spike",
		Description:    "Chocolate belt chaos: frantic inflow of small tasks that overwhelm slow processing.",
		MinDuration:    1,
		MaxDuration:    3,
		TaskMultiplier: 2.25,
		BeltSpeed:      2.0,
		Color:          "#ff4081",
		QueueBias:      0.35,
	},
}

// Registry is a read-only set of scenario profiles.
//
// A Registry is never mutated after NewRegistry returns, so it can be shared
// between goroutines without locking. Profiles are handed out by value.
type Registry struct {
	profiles   map[string]Profile
	order      []string
	defaultKey string
}

// NewRegistry creates a registry holding the built-in profiles
func NewRegistry() *Registry {
	r := &Registry{
		profiles:   make(map[string]Profile, len(builtin)),
		order:      make([]string, 0, len(builtin)),
		defaultKey: DefaultKey,
	}
	for _, p := range builtin {
		r.profiles[p.Key] = p
		r.order = append(r.order, p.Key)
	}
	return r
}

// Lookup returns the profile registered under key
func (r *Registry) Lookup(key string) (Profile, bool) {
	p, ok := r.profiles[key]
	return p, ok
}

// Resolve returns the profile for key, or the default profile when key is unknown
func (r *Registry) Resolve(key string) Profile {
	if p, ok := r.profiles[key]; ok {
		return p
	}
	return r.profiles[r.defaultKey]
}

// Default returns the fallback profile
func (r *Registry) Default() Profile {
	return r.profiles[r.defaultKey]
}

// Profiles returns all profiles in registration order
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.profiles[key])
	}
	return out
}

// Keys returns the registered keys sorted alphabetically
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.order))
	keys = append(keys, r.order...)
	sort.Strings(keys)
	return keys
}

// Next returns the key registered after key, wrapping around.
// Unknown keys start over at the first profile.
func (r *Registry) Next(key string) string {
	for i, k := range r.order {
		if k == key {
			return r.order[(i+1)%len(r.order)]
		}
	}
	return r.order[0]
}
