package tracer

import (
	"github.com/achilleasa/rigel/tracer/bsdf"
	"github.com/achilleasa/rigel/types"
)

// A pending radiance evaluation: a ray plus the accumulated throughput
// of the specular chain that spawned it.
type traceJob struct {
	ray    Ray
	depth  int
	weight types.Spectrum
}

// WhittedIntegrator estimates radiance using Whitted-style light
// transport: direct lighting at every intersection plus bounded
// branching along perfectly specular reflection and transmission
// directions. The specular chains are flattened into an explicit work
// list, so arbitrarily deep bounces never grow the call stack.
type WhittedIntegrator struct {
	maxDepth int
}

// Create a whitted integrator that follows specular chains at most
// maxDepth segments deep. A depth of 1 evaluates direct lighting only.
func NewWhittedIntegrator(maxDepth int) *WhittedIntegrator {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &WhittedIntegrator{maxDepth: maxDepth}
}

// Estimate the radiance arriving at the ray origin from the ray
// direction.
func (in *WhittedIntegrator) IncomingRadiance(r Ray, sc Scene, smp Sampler) types.Spectrum {
	var sum types.Spectrum

	jobs := make([]traceJob, 1, in.maxDepth+1)
	jobs[0] = traceJob{ray: r, depth: 0, weight: types.Grey(1)}

	for len(jobs) > 0 {
		job := jobs[len(jobs)-1]
		jobs = jobs[:len(jobs)-1]

		si, ok := sc.NearestHit(&job.ray)
		if !ok {
			// Escaped rays pick up no radiance; point lights emit
			// nothing along arbitrary directions.
			continue
		}

		b := si.Material.BSDF(si)
		sum = sum.Add(in.directLighting(si, b, sc, smp).Modulate(job.weight))

		if job.depth+1 >= in.maxDepth {
			continue
		}
		jobs = in.spawnSpecular(jobs, job, si, b, bsdf.Reflection|bsdf.Specular, smp)
		jobs = in.spawnSpecular(jobs, job, si, b, bsdf.Transmission|bsdf.Specular, smp)
	}

	return sum
}

// Accumulate the direct contribution of every scene light at si.
func (in *WhittedIntegrator) directLighting(si *SurfaceInteraction, b *bsdf.BSDF, sc Scene, smp Sampler) types.Spectrum {
	var sum types.Spectrum
	for _, light := range sc.Lights() {
		li, wi, dist, pdf := light.SampleIncident(si.Point, smp.Get2D())
		if pdf <= 0 || li.IsBlack() {
			continue
		}

		f := b.F(si.Wo, wi)
		cosTheta := wi.AbsDot(si.ShadingNormal)
		if f.IsBlack() || cosTheta <= 0 {
			continue
		}

		contrib := f.Modulate(li).Mul(cosTheta / pdf)
		if !contrib.IsFinite() {
			continue
		}

		vis := NewVisibilityTester(si, si.Point.Add(wi.Mul(dist)))
		if vis.Unoccluded(sc) {
			sum = sum.Add(contrib)
		}
	}
	return sum
}

// Sample the specular lobe matching flags at si and queue the spawned
// ray weighted by the lobe throughput. Failed or degenerate samples
// queue nothing.
func (in *WhittedIntegrator) spawnSpecular(jobs []traceJob, job traceJob, si *SurfaceInteraction, b *bsdf.BSDF, flags bsdf.Type, smp Sampler) []traceJob {
	wi, f, pdf, _ := b.SampleF(si.Wo, smp.Get2D(), flags)
	if pdf <= 0 || f.IsBlack() {
		return jobs
	}

	cosTheta := wi.AbsDot(si.ShadingNormal)
	if cosTheta == 0 {
		return jobs
	}

	weight := job.weight.Modulate(f).Mul(cosTheta / pdf)
	if weight.IsBlack() || !weight.IsFinite() {
		return jobs
	}

	return append(jobs, traceJob{
		ray:    si.SpawnRay(wi),
		depth:  job.depth + 1,
		weight: weight,
	})
}
