package spectrum

import (
	"fmt"

	"uvcat/internal/logging"
	"uvcat/internal/physics"
)

// Law selects which radiance formula a series samples.
type Law string

const (
	LawPlanck        Law = "planck"
	LawRayleighJeans Law = "rayleigh-jeans"
	LawWien          Law = "wien"
)

// ParseLaw maps user-facing law names (including the short aliases the
// CLI accepts) to a Law.
func ParseLaw(s string) (Law, error) {
	switch s {
	case "planck", "p":
		return LawPlanck, nil
	case "rayleigh-jeans", "rj", "classical":
		return LawRayleighJeans, nil
	case "wien", "w":
		return LawWien, nil
	default:
		return "", fmt.Errorf("unknown law %q (want planck, rayleigh-jeans, or wien)", s)
	}
}

// Label returns the display name used in chart legends and CSV headers.
func (l Law) Label() string {
	switch l {
	case LawPlanck:
		return "Planck"
	case LawRayleighJeans:
		return "Rayleigh-Jeans"
	case LawWien:
		return "Wien"
	default:
		return string(l)
	}
}

func (l Law) radiance(wavelengthM, tempK float64) (float64, error) {
	switch l {
	case LawPlanck:
		return physics.PlanckRadiance(wavelengthM, tempK)
	case LawRayleighJeans:
		return physics.RayleighJeansRadiance(wavelengthM, tempK)
	case LawWien:
		return physics.WienRadiance(wavelengthM, tempK)
	default:
		return 0, fmt.Errorf("unknown law %q", string(l))
	}
}

// Series is one sampled radiance curve: a single law at a single
// temperature over a wavelength grid.
type Series struct {
	Law           Law
	Temperature   float64 // kelvin
	WavelengthsNm []float64
	Values        []float64 // W·sr⁻¹·m⁻³ unless rescaled
	Scale         float64   // cumulative scale applied by Normalize/AnchorTo (1 = raw)
}

// Compute samples the law at tempK over the given grid.
func Compute(law Law, tempK float64, wavelengthsNm []float64) (*Series, error) {
	if len(wavelengthsNm) == 0 {
		return nil, ErrEmptySeries
	}
	timer := logging.StartTimer(logging.CategorySpectrum, fmt.Sprintf("compute %s @ %gK", law, tempK))
	defer timer.Stop()

	values := make([]float64, len(wavelengthsNm))
	for i, wl := range wavelengthsNm {
		v, err := law.radiance(wl*MetersPerNm, tempK)
		if err != nil {
			return nil, fmt.Errorf("sample %d (%g nm): %w", i, wl, err)
		}
		values[i] = v
	}

	logging.SpectrumDebug("computed %s series: T=%gK, %d samples [%g, %g] nm",
		law, tempK, len(wavelengthsNm), wavelengthsNm[0], wavelengthsNm[len(wavelengthsNm)-1])

	return &Series{
		Law:           law,
		Temperature:   tempK,
		WavelengthsNm: wavelengthsNm,
		Values:        values,
		Scale:         1,
	}, nil
}

// Peak returns the wavelength and value of the series maximum.
func (s *Series) Peak() (wavelengthNm, value float64, err error) {
	if len(s.Values) == 0 {
		return 0, 0, ErrEmptySeries
	}
	best := 0
	for i, v := range s.Values {
		if v > s.Values[best] {
			best = i
		}
	}
	return s.WavelengthsNm[best], s.Values[best], nil
}

// Normalize rescales the series in place so its maximum is 1 and returns
// the factor applied. A series of all zeros is left untouched.
func (s *Series) Normalize() (float64, error) {
	_, max, err := s.Peak()
	if err != nil {
		return 0, err
	}
	if max == 0 {
		return 1, nil
	}
	factor := 1 / max
	for i := range s.Values {
		s.Values[i] *= factor
	}
	s.Scale *= factor
	return factor, nil
}

// AnchorTo rescales s in place so it equals ref at the sample nearest
// refNm. This is the classic presentation trick that keeps the diverging
// Rayleigh-Jeans curve on the same axis as the Planck curve: match them
// in the infrared and let the UV blow-up show.
func (s *Series) AnchorTo(ref *Series, refNm float64) error {
	if len(s.WavelengthsNm) != len(ref.WavelengthsNm) {
		return fmt.Errorf("%w: %d vs %d samples", ErrGridMismatch, len(s.WavelengthsNm), len(ref.WavelengthsNm))
	}
	idx, err := NearestIndex(s.WavelengthsNm, refNm)
	if err != nil {
		return err
	}
	if s.Values[idx] == 0 {
		return fmt.Errorf("cannot anchor at %g nm: series value is zero", s.WavelengthsNm[idx])
	}

	factor := ref.Values[idx] / s.Values[idx]
	for i := range s.Values {
		s.Values[i] *= factor
	}
	s.Scale *= factor
	logging.SpectrumDebug("anchored %s to %s at %g nm (factor %g)", s.Law, ref.Law, s.WavelengthsNm[idx], factor)
	return nil
}
