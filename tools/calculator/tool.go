package calculator

import (
	"context"

	"github.com/Knetic/govaluate"

	"github.com/agentlab/corag-agents/tools"
)

// Input Tool for performing calculations. Supports basic arithmetic operations
// like addition, subtraction, multiplication, and division, as well as
// exponentiation and common math functions.
type Input struct {
	// Expression Mathematical expression to evaluate. For example, '2 + 2'.
	Expression string `json:"expression" jsonschema:"title=expression,description=Mathematical expression to evaluate. For example '2 + 2' or 'sqrt(16) * pi'." validate:"required"`
	// Params represents expressions's parameters
	Params map[string]interface{} `json:"params,omitempty" jsonschema:"title=params,description=Named parameters referenced by the expression."`
}

func NewInput(exp string, params map[string]interface{}) *Input {
	return &Input{
		Expression: exp,
		Params:     params,
	}
}

// Output Schema for the output of the calculator
type Output struct {
	// Result Result of the calculation
	Result interface{} `json:"result"`
}

func NewOutput(result interface{}) *Output {
	return &Output{
		Result: result,
	}
}

// New returns the calculator tool
func New(opts ...tools.Option) *tools.Func[Input, Output] {
	opts = append([]tools.Option{
		tools.WithDescription("Evaluate a mathematical expression and return the numeric result."),
	}, opts...)
	return tools.NewFunc("calculate", Run, opts...)
}

// Run evaluates the expression
func Run(_ context.Context, input *Input) (*Output, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(input.Expression, functions)
	if err != nil {
		return nil, err
	}
	params := make(map[string]interface{}, len(input.Params)+len(constParams))
	for k, v := range constParams {
		params[k] = v
	}
	for k, v := range input.Params {
		params[k] = v
	}
	result, err := exp.Evaluate(params)
	if err != nil {
		return nil, err
	}
	return NewOutput(result), nil
}
