package lattice

import (
	"math"
	"runtime"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/latticeplan/minimize"
	"go.viam.com/latticeplan/utils"
)

// default values for planning options.
const (
	// Weight of the curvature-rate times length term.
	defaultSmoothnessWeight = 0.15

	// Weight of the inverse clearance term.
	defaultObstacleWeight = 0.3

	// Weight of the mean squared lateral offset term.
	defaultGuidanceWeight = 0.2

	// Number of points each segment is sampled at before projection. Also the minimum accepted.
	defaultSampleCount = 10

	// Added to the clearance before inverting it.
	defaultClearanceEpsilon = 1e-6

	// Lateral indices per ply run from -n to n.
	defaultLateralSamples = 5

	// Station tolerance when checking plies against the reference length.
	stationSlack = 1e-9

	// default number of seconds to try to plan before returning.
	defaultTimeout = 300.
)

var (
	// Default ply layout: a wide ply close to the start and a narrow one at the goal station.
	defaultStations     = []float64{2, 10}
	defaultOffsetScales = []float64{0.5, 0.1}

	defaultNumThreads = utils.GetenvInt(utils.NumThreadsEnvVar, max(1, runtime.NumCPU()/2))
)

// PlannerOptions are a set of options to be passed to the lattice planner.
type PlannerOptions struct {
	// Cost weights for each edge.
	SmoothnessWeight float64 `json:"smoothness_weight"`
	ObstacleWeight   float64 `json:"obstacle_weight"`
	GuidanceWeight   float64 `json:"guidance_weight"`

	// Number of samples taken along every segment, at least 10.
	SampleCount int `json:"sample_count"`

	// Keeps the clearance term finite when a segment grazes an obstacle.
	Epsilon float64 `json:"epsilon"`

	// Each ply has 2*LateralSamples+1 nodes.
	LateralSamples int `json:"lateral_samples"`

	// Station of each ply along the reference. Strictly increasing and within the reference length.
	Stations []float64 `json:"stations"`

	// Lateral distance between adjacent nodes of each ply.
	OffsetScales []float64 `json:"offset_scales"`

	// Minimizer settings for projecting onto the reference. Zero values select defaults.
	ProjectionXTol    float64 `json:"projection_x_tol"`
	ProjectionMaxIter int     `json:"projection_max_iter"`

	// Number of seconds before terminating planner
	Timeout float64 `json:"timeout"`

	// Number of goroutines scoring edges
	NumThreads int `json:"num_threads"`
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		SmoothnessWeight: defaultSmoothnessWeight,
		ObstacleWeight:   defaultObstacleWeight,
		GuidanceWeight:   defaultGuidanceWeight,
		SampleCount:      defaultSampleCount,
		Epsilon:          defaultClearanceEpsilon,
		LateralSamples:   defaultLateralSamples,
		Stations:         append([]float64(nil), defaultStations...),
		OffsetScales:     append([]float64(nil), defaultOffsetScales...),
		Timeout:          defaultTimeout,
		NumThreads:       defaultNumThreads,
	}
}

// NewPlannerOptionsFromExtra overlays the keys of `extra` onto the basic options, using the json names of
// the fields.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()
	if len(extra) == 0 {
		return opt, nil
	}
	// Slices are replaced rather than merged element-wise.
	if _, ok := extra["stations"]; ok {
		opt.Stations = nil
	}
	if _, ok := extra["offset_scales"]; ok {
		opt.OffsetScales = nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: opt, ErrorUnused: true})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, errors.Wrap(err, "decoding planner options")
	}
	return opt, nil
}

// ProjectionSettings returns the minimizer settings used when projecting onto the reference.
func (opt *PlannerOptions) ProjectionSettings() minimize.Settings {
	return minimize.Settings{XTol: opt.ProjectionXTol, MaxIter: opt.ProjectionMaxIter}
}

// NumPlies returns the number of plies after the start node.
func (opt *PlannerOptions) NumPlies() int {
	return len(opt.Stations)
}

// Validate checks the options against a reference of the given length and returns every problem found.
func (opt *PlannerOptions) Validate(referenceLength float64) error {
	var errs error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = multierr.Append(errs, errors.Errorf(format, args...))
		}
	}

	for _, w := range []struct {
		name  string
		value float64
	}{
		{"smoothness_weight", opt.SmoothnessWeight},
		{"obstacle_weight", opt.ObstacleWeight},
		{"guidance_weight", opt.GuidanceWeight},
	} {
		check(w.value >= 0 && !math.IsInf(w.value, 0), "%s must be finite and non-negative, got %v", w.name, w.value)
	}
	check(opt.SampleCount >= defaultSampleCount, "sample_count must be at least %d, got %d", defaultSampleCount, opt.SampleCount)
	check(opt.Epsilon > 0 && !math.IsInf(opt.Epsilon, 0), "epsilon must be positive, got %v", opt.Epsilon)
	check(opt.LateralSamples >= 0, "lateral_samples must be non-negative, got %d", opt.LateralSamples)
	check(opt.ProjectionXTol >= 0, "projection_x_tol must be non-negative, got %v", opt.ProjectionXTol)
	check(opt.ProjectionMaxIter >= 0, "projection_max_iter must be non-negative, got %d", opt.ProjectionMaxIter)
	check(opt.Timeout > 0, "timeout must be positive, got %v", opt.Timeout)
	check(opt.NumThreads > 0, "num_threads must be positive, got %d", opt.NumThreads)

	check(len(opt.Stations) > 0, "at least one station is required")
	check(len(opt.OffsetScales) == len(opt.Stations),
		"need one offset scale per station, got %d scales for %d stations", len(opt.OffsetScales), len(opt.Stations))
	prev := 0.
	for i, s := range opt.Stations {
		check(s > prev, "station %d (%v) must be greater than %v", i, s, prev)
		check(s <= referenceLength+stationSlack, "station %d (%v) is beyond the reference length %v", i, s, referenceLength)
		if s > prev {
			prev = s
		}
	}
	for i, scale := range opt.OffsetScales {
		check(scale > 0 && !math.IsInf(scale, 0), "offset scale %d must be positive, got %v", i, scale)
	}
	return errs
}
