package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseSignature builds an ABI method from a human-readable signature such as
// "approve(address,uint256)" or "balanceOf(address)(uint256)". The optional
// second parenthesised list declares return types for reads.
// Tuple types are not supported.
func ParseSignature(signature string) (abi.Method, error) {
	sig := strings.ReplaceAll(signature, " ", "")

	open := strings.IndexByte(sig, '(')
	if open <= 0 {
		return abi.Method{}, fmt.Errorf("invalid function signature %q", signature)
	}
	name := sig[:open]

	inputs, rest, err := splitTypeList(sig[open:])
	if err != nil {
		return abi.Method{}, fmt.Errorf("invalid function signature %q: %w", signature, err)
	}

	var outputs []string
	if rest != "" {
		outputs, rest, err = splitTypeList(rest)
		if err != nil {
			return abi.Method{}, fmt.Errorf("invalid return types in %q: %w", signature, err)
		}
		if rest != "" {
			return abi.Method{}, fmt.Errorf("unexpected trailing %q in %q", rest, signature)
		}
	}

	in, err := toArguments(inputs)
	if err != nil {
		return abi.Method{}, fmt.Errorf("invalid function signature %q: %w", signature, err)
	}
	out, err := toArguments(outputs)
	if err != nil {
		return abi.Method{}, fmt.Errorf("invalid return types in %q: %w", signature, err)
	}

	return abi.NewMethod(name, name, abi.Function, "", false, false, in, out), nil
}

// splitTypeList consumes "(t1,t2,...)" from the front of s.
func splitTypeList(s string) ([]string, string, error) {
	if !strings.HasPrefix(s, "(") {
		return nil, "", fmt.Errorf("expected '('")
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return nil, "", fmt.Errorf("missing ')'")
	}
	body := s[1:end]
	if strings.ContainsRune(body, '(') {
		return nil, "", fmt.Errorf("tuple types are not supported")
	}
	if body == "" {
		return nil, s[end+1:], nil
	}
	return strings.Split(body, ","), s[end+1:], nil
}

func toArguments(types []string) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ})
	}
	return args, nil
}

// packCall returns selector || abi-encoded args.
func packCall(method abi.Method, args ...any) ([]byte, error) {
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s arguments: %w", method.Sig, err)
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}
