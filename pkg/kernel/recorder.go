package kernel

import "fmt"

// Call is one recorded kernel request.
type Call struct {
	Method string
	Args   []any
}

// Recorder is a Kernel implementation that holds no geometry: it assigns
// sequential tags per dimension and records every request in order. It is
// the test double used to assert request sequences without a real backend.
//
// Recorder is not safe for concurrent use, matching the single-threaded
// pipeline contract.
type Recorder struct {
	Calls []Call

	// GenerateErr and WriteErr, when set, are returned by Generate and
	// Write to exercise kernel failure propagation.
	GenerateErr error
	WriteErr    error

	nextPoint   int
	nextCurve   int
	nextLoop    int
	nextSurface int
	nextGroup   int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(method string, args ...any) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args})
}

// Sequence returns the recorded method names in call order.
func (r *Recorder) Sequence() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

// Count returns how many calls to the named method were recorded.
func (r *Recorder) Count(method string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// First returns the index of the first call to the named method, or -1.
func (r *Recorder) First(method string) int {
	for i, c := range r.Calls {
		if c.Method == method {
			return i
		}
	}
	return -1
}

// Last returns the index of the last call to the named method, or -1.
func (r *Recorder) Last(method string) int {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Method == method {
			return i
		}
	}
	return -1
}

func (r *Recorder) AddPoint(x, y, z, meshSize float64) int {
	r.nextPoint++
	r.record("AddPoint", x, y, z, meshSize)
	return r.nextPoint
}

func (r *Recorder) AddLine(start, end int) int {
	r.nextCurve++
	r.record("AddLine", start, end)
	return r.nextCurve
}

func (r *Recorder) AddSpline(pointTags []int) int {
	r.nextCurve++
	r.record("AddSpline", pointTags)
	return r.nextCurve
}

func (r *Recorder) AddCircleArc(start, center, end int) int {
	r.nextCurve++
	r.record("AddCircleArc", start, center, end)
	return r.nextCurve
}

func (r *Recorder) SplitCurve(curveTag int, pointTags []int) []int {
	r.record("SplitCurve", curveTag, pointTags)
	out := make([]int, len(pointTags)+1)
	for i := range out {
		r.nextCurve++
		out[i] = r.nextCurve
	}
	return out
}

func (r *Recorder) AddCurveLoop(curveTags []int) int {
	r.nextLoop++
	r.record("AddCurveLoop", curveTags)
	return r.nextLoop
}

func (r *Recorder) AddPlaneSurface(loopTags []int) int {
	r.nextSurface++
	r.record("AddPlaneSurface", loopTags)
	return r.nextSurface
}

func (r *Recorder) Rotate(entities []Entity, origin, axis Vec3, angle float64) {
	r.record("Rotate", entities, origin, axis, angle)
}

func (r *Recorder) Translate(entities []Entity, offset Vec3) {
	r.record("Translate", entities, offset)
}

func (r *Recorder) SetTransfiniteCurve(curveTag, nodes int, meshType MeshType, coef float64) {
	r.record("SetTransfiniteCurve", curveTag, nodes, meshType, coef)
}

func (r *Recorder) SetTransfiniteSurface(surfaceTag int, cornerTags []int) {
	r.record("SetTransfiniteSurface", surfaceTag, cornerTags)
}

func (r *Recorder) Recombine(surfaceTag int) {
	r.record("Recombine", surfaceTag)
}

func (r *Recorder) AddPhysicalGroup(dim int, tags []int, name string) int {
	r.nextGroup++
	r.record("AddPhysicalGroup", dim, tags, name)
	return r.nextGroup
}

func (r *Recorder) Synchronize() {
	r.record("Synchronize")
}

func (r *Recorder) SetOption(name string, value float64) {
	r.record("SetOption", name, value)
}

func (r *Recorder) BoundaryLayerField(curveTags []int, firstHeight, ratio, thickness float64, fanPoints []int) {
	r.record("BoundaryLayerField", curveTags, firstHeight, ratio, thickness, fanPoints)
}

func (r *Recorder) Generate(dim int) error {
	r.record("Generate", dim)
	return r.GenerateErr
}

func (r *Recorder) Optimize(method string, passes int) {
	r.record("Optimize", method, passes)
}

func (r *Recorder) Write(path string) error {
	r.record("Write", path)
	return r.WriteErr
}

// String renders the recorded sequence, one call per line.
func (r *Recorder) String() string {
	out := ""
	for _, c := range r.Calls {
		out += fmt.Sprintf("%s%v\n", c.Method, c.Args)
	}
	return out
}

var _ Kernel = (*Recorder)(nil)
