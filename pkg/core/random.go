package core

import (
	"math"
	"math/rand"
)

// RandomRange returns a uniform value in [lo, hi)
func RandomRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(random *rand.Rand, lo, hi float64) Vec3 {
	return Vec3{
		X: RandomRange(random, lo, hi),
		Y: RandomRange(random, lo, hi),
		Z: RandomRange(random, lo, hi),
	}
}

// RandomInUnitSphere generates a random point inside a unit sphere by rejection
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := RandomVec3(random, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	a := RandomRange(random, 0, 2*math.Pi)
	z := RandomRange(random, -1, 1)
	r := math.Sqrt(1 - z*z)
	return Vec3{r * math.Cos(a), r * math.Sin(a), z}
}

// RandomInUnitDisk generates a random point in the unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := Vec3{RandomRange(random, -1, 1), RandomRange(random, -1, 1), 0}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
