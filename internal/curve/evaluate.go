package curve

import "math"

// Evaluate returns the value of the curve at time t.
// Outside the keyed range the curve holds the first/last value.
func (c *Curve) Evaluate(t float64) float64 {
	kfs := c.keyframes
	if len(kfs) == 0 {
		return 0
	}
	if t <= kfs[0].Time {
		return kfs[0].Value
	}
	if t >= kfs[len(kfs)-1].Time {
		return kfs[len(kfs)-1].Value
	}

	// First keyframe strictly after t; t lies in [prev.Time, next.Time).
	i := sortSearchAfter(kfs, t)
	prev, next := kfs[i-1], kfs[i]
	return interpolate(prev, next, t)
}

func sortSearchAfter(kfs []Keyframe, t float64) int {
	lo, hi := 0, len(kfs)
	for lo < hi {
		mid := (lo + hi) / 2
		if kfs[mid].Time > t {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func interpolate(prev, next Keyframe, t float64) float64 {
	duration := next.Time - prev.Time
	x := (t - prev.Time) / duration
	delta := next.Value - prev.Value

	switch prev.Interpolation {
	case InterpolationConstant:
		return prev.Value
	case InterpolationLinear:
		return lerp(prev.Value, next.Value, x)
	case InterpolationBezier, "":
		return bezier(prev, next, t)
	case InterpolationBack:
		return prev.Value + delta*ease(prev.Easing, EasingOut, x, func(x float64) float64 {
			return backIn(x, prev.Back)
		})
	case InterpolationBounce:
		return prev.Value + delta*ease(prev.Easing, EasingOut, x, bounceIn)
	case InterpolationElastic:
		amp, period := elasticParams(prev, duration, delta)
		return prev.Value + delta*ease(prev.Easing, EasingOut, x, func(x float64) float64 {
			return elasticIn(x, amp, period)
		})
	}

	in, ok := easingCurves[prev.Interpolation]
	if !ok {
		return lerp(prev.Value, next.Value, x)
	}
	return prev.Value + delta*ease(prev.Easing, EasingIn, x, in)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ease shapes the normalized progress x with the ease-in curve in, following
// the keyframe easing. AUTO resolves to fallback.
func ease(mode, fallback Easing, x float64, in func(float64) float64) float64 {
	if mode == EasingAuto || mode == "" {
		mode = fallback
	}
	switch mode {
	case EasingOut:
		return 1 - in(1-x)
	case EasingInOut:
		if x < 0.5 {
			return in(2*x) / 2
		}
		return 1 - in(2-2*x)/2
	default:
		return in(x)
	}
}

var easingCurves = map[Interpolation]func(float64) float64{
	InterpolationSine: func(x float64) float64 {
		return 1 - math.Cos(x*math.Pi/2)
	},
	InterpolationQuad:  func(x float64) float64 { return pow(x, 2) },
	InterpolationCubic: func(x float64) float64 { return pow(x, 3) },
	InterpolationQuart: func(x float64) float64 { return pow(x, 4) },
	InterpolationQuint: func(x float64) float64 { return pow(x, 5) },
	InterpolationExpo: func(x float64) float64 {
		if x == 0 {
			return 0
		}
		return math.Pow(2, 10*(x-1))
	},
	InterpolationCirc: func(x float64) float64 {
		return 1 - math.Sqrt(1-x*x)
	},
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}

func backIn(x, overshoot float64) float64 {
	if overshoot == 0 {
		overshoot = DefaultBack
	}
	return x * x * ((overshoot+1)*x - overshoot)
}

func bounceIn(x float64) float64 {
	return 1 - bounceOut(1-x)
}

func bounceOut(x float64) float64 {
	switch {
	case x < 1/2.75:
		return 7.5625 * x * x
	case x < 2/2.75:
		x -= 1.5 / 2.75
		return 7.5625*x*x + 0.75
	case x < 2.5/2.75:
		x -= 2.25 / 2.75
		return 7.5625*x*x + 0.9375
	default:
		x -= 2.625 / 2.75
		return 7.5625*x*x + 0.984375
	}
}

// elasticParams converts the keyframe amplitude (value units) and period
// (frames) into values relative to the segment.
func elasticParams(kf Keyframe, duration, delta float64) (amp, period float64) {
	period = 0.3
	if kf.Period > 0 && duration > 0 {
		period = kf.Period / duration
	}
	amp = 1
	if delta != 0 && math.Abs(kf.Amplitude) > math.Abs(delta) {
		amp = math.Abs(kf.Amplitude / delta)
	}
	return amp, period
}

func elasticIn(x, amp, period float64) float64 {
	if x <= 0 || x >= 1 {
		return x
	}
	s := period / (2 * math.Pi) * math.Asin(1/amp)
	x--
	return -(amp * math.Pow(2, 10*x) * math.Sin((x-s)*2*math.Pi/period))
}

// bezier evaluates the cubic segment spanned by prev's right handle and
// next's left handle. Handle times are clamped into the segment so the
// time axis stays monotonic.
func bezier(prev, next Keyframe, t float64) float64 {
	x0, y0 := prev.Time, prev.Value
	x3, y3 := next.Time, next.Value
	x1 := clamp(x0+prev.HandleRight.Time, x0, x3)
	y1 := y0 + prev.HandleRight.Value
	x2 := clamp(x3+next.HandleLeft.Time, x0, x3)
	y2 := y3 + next.HandleLeft.Value

	// Bisection on the monotonic x(u).
	lo, hi := 0.0, 1.0
	u := (t - x0) / (x3 - x0)
	for i := 0; i < 48; i++ {
		x := cubic(x0, x1, x2, x3, u)
		if math.Abs(x-t) < 1e-9 {
			break
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return cubic(y0, y1, y2, y3, u)
}

func cubic(p0, p1, p2, p3, u float64) float64 {
	v := 1 - u
	return v*v*v*p0 + 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u*p3
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
