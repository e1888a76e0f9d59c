package fabricator

import "math"

// Activations maps function names to the scalar activation functions they
// name, so graph descriptions loaded from a file (see cmd/fabricate) can
// refer to activations by name the way a NEAT genome does.
var Activations = map[string]ActivationFunc{
	"identity": Identity,
	"linear":   Identity,
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"relu":     ReLU,
	"gaussian": Gaussian,
	"absolute": Absolute,
	"sine":     Sine,
	"cosine":   Cosine,
	"inverse":  Inverse,
	"square":   Square,
	"cube":     Cube,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationFunc, error) {
	if fn, ok := Activations[name]; ok {
		return fn, nil
	}
	return nil, &unknownActivationError{name: name}
}

type unknownActivationError struct{ name string }

func (e *unknownActivationError) Error() string {
	return "unknown activation function: " + e.name
}

// Identity is the linear activation used throughout the unroller's wrapper
// nodes and by carry columns.
func Identity(x float64) float64 { return x }

// Sigmoid uses the same steepness (k=4.9) as the reference NEAT activation
// set, not the textbook k=1 logistic curve.
func Sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-4.9*x)) }

// Tanh is the standard hyperbolic tangent.
func Tanh(x float64) float64 { return math.Tanh(x) }

// ReLU is max(0, x).
func ReLU(x float64) float64 { return math.Max(0, x) }

// Gaussian is the standard-normal bump centered at 0.
func Gaussian(x float64) float64 { return math.Exp(-x * x / 2.0) }

// Absolute is |x|.
func Absolute(x float64) float64 { return math.Abs(x) }

// Sine is sin(x).
func Sine(x float64) float64 { return math.Sin(x) }

// Cosine is cos(x).
func Cosine(x float64) float64 { return math.Cos(x) }

// Inverse negates its input.
func Inverse(x float64) float64 { return -x }

// Square is x^2.
func Square(x float64) float64 { return x * x }

// Cube is x^3.
func Cube(x float64) float64 { return x * x * x }
