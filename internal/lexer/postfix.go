package lexer

import "fmt"

// ToPostfix converts a validated infix token list into postfix order using
// the shunting-yard algorithm: literals and postfix operators are appended
// directly to the output; a right paren pops operators until a matching left
// paren; a left paren is pushed; an infix operator pops operators of greater
// or equal precedence from the stack to the output before being pushed
// itself.
func ToPostfix(tokens []Token) ([]Token, error) {
	var output []Token
	var opStack []Token

	pop := func() Token {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		return top
	}

	for _, tok := range tokens {
		switch tok.Kind() {
		case Literal, PostfixOperator:
			output = append(output, tok)
		case LeftParen:
			opStack = append(opStack, tok)
		case RightParen:
			found := false
			for len(opStack) > 0 {
				top := pop()
				if top.Kind() == LeftParen {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, invalid("unbalanced parentheses: no matching left paren")
			}
		case InfixOperator:
			infixTok, ok := tok.(InfixToken)
			if !ok {
				return nil, fmt.Errorf("token %v declared as infix operator but does not implement InfixToken", tok)
			}
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Kind() == LeftParen {
					break
				}
				topPrec, err := precedenceOf(top)
				if err != nil {
					return nil, err
				}
				if topPrec >= infixTok.Precedence() {
					output = append(output, pop())
					continue
				}
				break
			}
			opStack = append(opStack, tok)
		default:
			return nil, fmt.Errorf("unrecognized token kind %v", tok.Kind())
		}
	}

	for len(opStack) > 0 {
		top := pop()
		if top.Kind() == LeftParen {
			return nil, invalid("unbalanced parentheses: unmatched left paren")
		}
		output = append(output, top)
	}

	return output, nil
}

func precedenceOf(tok Token) (int, error) {
	switch tok.Kind() {
	case InfixOperator:
		return tok.(InfixToken).Precedence(), nil
	case PostfixOperator:
		return tok.(PostfixToken).Precedence(), nil
	default:
		return 0, fmt.Errorf("token %v has no precedence", tok)
	}
}

// Evaluate walks a postfix token stream with an operand stack, pushing
// literal values and combining them with operator evaluation hooks. A single
// residual value on the stack at the end is the result; any other outcome is
// an error.
func Evaluate(postfix []Token) (Value, error) {
	var stack []Value

	for _, tok := range postfix {
		switch tok.Kind() {
		case Literal:
			lit, ok := tok.(LiteralToken)
			if !ok {
				return nil, fmt.Errorf("token %v declared as literal but does not implement LiteralToken", tok)
			}
			v, err := lit.Eval()
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
		case PostfixOperator:
			op, ok := tok.(PostfixToken)
			if !ok {
				return nil, fmt.Errorf("token %v declared as postfix operator but does not implement PostfixToken", tok)
			}
			if len(stack) < 1 {
				return nil, fmt.Errorf("postfix operator %q at position %d has no operand", tok.Lexeme(), tok.Pos())
			}
			operand := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v, err := op.EvalPostfix(operand)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
		case InfixOperator:
			op, ok := tok.(InfixToken)
			if !ok {
				return nil, fmt.Errorf("token %v declared as infix operator but does not implement InfixToken", tok)
			}
			if len(stack) < 2 {
				return nil, fmt.Errorf("infix operator %q at position %d is missing operands", tok.Lexeme(), tok.Pos())
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			v, err := op.EvalInfix(left, right)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
		default:
			return nil, fmt.Errorf("postfix stream contains non-operand token %v", tok)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("postfix evaluation left %d residual values, want 1", len(stack))
	}

	return stack[0], nil
}
