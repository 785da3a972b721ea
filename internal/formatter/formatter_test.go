package formatter

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dartyper/internal/errors"
)

func TestFormat_NormalisesWhitespace(t *testing.T) {
	input := "\n\nclass Person {  \r\n  final String name;\t\r\n\r\n\r\n\r\n  const Person({\n    required this.name,\n  });\n}\n\n\n"

	formatter := NewFormatter()
	formatted, err := formatter.Format(input)
	require.NoError(t, err)

	expectedOutput := `class Person {
  final String name;

  const Person({
    required this.name,
  });
}
`
	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_WithImports(t *testing.T) {
	input := `import 'package:json_annotation/json_annotation.dart';
import 'dart:convert';
import 'package:equatable/equatable.dart';

class Event extends Equatable {
  const Event();
}
`

	formatter := NewFormatter()
	formatted, err := formatter.Format(input)
	require.NoError(t, err)

	expectedOutput := `import 'dart:convert';

import 'package:equatable/equatable.dart';
import 'package:json_annotation/json_annotation.dart';

class Event extends Equatable {
  const Event();
}
`
	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_KeepsPartDirectives(t *testing.T) {
	input := `import 'package:freezed_annotation/freezed_annotation.dart';

part 'user.freezed.dart';

@freezed
class User with _$User {
  const factory User() = _User;
}
`
	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, input, formatted)
}

func TestFormat_EmptyInput(t *testing.T) {
	formatted, err := NewFormatter().Format("  \n\t\n")
	require.NoError(t, err)
	assert.Empty(t, formatted)
}

func TestFormat_Idempotent(t *testing.T) {
	input := "import 'package:b/b.dart';\nimport 'package:a/a.dart';\n\n\n\nclass A {\n  @override\n  String toString() => 'A(}{)';\n}"

	formatter := NewFormatter()
	once, err := formatter.Format(input)
	require.NoError(t, err)
	twice, err := formatter.Format(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFormat_InvalidCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"missing brace", "class A {\n  const A();\n", "unclosed '{'"},
		{"stray paren", "class A {\n  const A());\n}\n", "unexpected ')' on line 2"},
		{"unterminated string", "class A {\n  String get s => 'oops;\n}\n", "unterminated string literal on line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter().Format(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeFormat}))
		})
	}
}

func TestCheckBalance_IgnoresStringsAndComments(t *testing.T) {
	code := "class A {\n  // a stray } in a comment\n  final s = 'it\\'s { open';\n  final t = \"[\";\n}\n"
	assert.NoError(t, checkBalance(code))
}
