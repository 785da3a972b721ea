package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/models"
)

var (
	stringType  = models.PrimitiveType(models.PrimString)
	numType     = models.PrimitiveType(models.PrimNum)
	boolType    = models.PrimitiveType(models.PrimBool)
	dynamicType = models.PrimitiveType(models.PrimDynamic)
)

func userSchema(role models.Role) *models.ClassSchema {
	return &models.ClassSchema{
		Name: "User",
		Role: role,
		Fields: []models.FieldSchema{
			{SourceKey: "id", Identifier: "id", Type: numType},
			{SourceKey: "first_name", Identifier: "firstName", Type: stringType},
			{SourceKey: "tags", Identifier: "tags", Type: models.ListOf(stringType)},
			{SourceKey: "address", Identifier: "address", Type: models.ClassRef("UserAddress")},
		},
		Nested: []*models.ClassSchema{
			{
				Name: "UserAddress",
				Role: role,
				Fields: []models.FieldSchema{
					{SourceKey: "city", Identifier: "city", Type: stringType},
				},
			},
		},
	}
}

func assertCode(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generated code mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_RegularNeutral(t *testing.T) {
	got := NewGenerator().Generate(userSchema(models.RoleNeutral))

	want := `import 'package:json_annotation/json_annotation.dart';

class User {
  final num id;
  @JsonKey(name: 'first_name')
  final String firstName;
  final List<String> tags;
  final UserAddress address;

  const User({
    required this.id,
    required this.firstName,
    required this.tags,
    required this.address,
  });

  factory User.fromJson(Map<String, dynamic> json) {
    return User(
      id: json['id'] as num,
      firstName: json['first_name'] as String,
      tags: List<String>.from(json['tags'] as List),
      address: UserAddress.fromJson(json['address'] as Map<String, dynamic>),
    );
  }

  Map<String, dynamic> toJson() {
    return {
      'id': id,
      'first_name': firstName,
      'tags': tags,
      'address': address.toJson(),
    };
  }
}

class UserAddress {
  final String city;

  const UserAddress({
    required this.city,
  });

  factory UserAddress.fromJson(Map<String, dynamic> json) {
    return UserAddress(
      city: json['city'] as String,
    );
  }

  Map<String, dynamic> toJson() {
    return {
      'city': city,
    };
  }
}
`
	assertCode(t, want, got)
}

func TestGenerate_RoleSelectsMethods(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Model.GenerateJSONAnnotation = false

	t.Run("response decodes only", func(t *testing.T) {
		got := NewGeneratorWithConfig(cfg).Generate(userSchema(models.RoleResponse))
		assert.Contains(t, got, "factory User.fromJson(")
		assert.Contains(t, got, "factory UserAddress.fromJson(")
		assert.NotContains(t, got, "toJson()")
	})

	t.Run("request encodes only", func(t *testing.T) {
		got := NewGeneratorWithConfig(cfg).Generate(userSchema(models.RoleRequest))
		assert.NotContains(t, got, "fromJson")
		assert.Contains(t, got, "Map<String, dynamic> toJson() {")
		assert.Contains(t, got, "'address': address.toJson(),")
	})

	t.Run("no annotations without json_annotation", func(t *testing.T) {
		got := NewGeneratorWithConfig(cfg).Generate(userSchema(models.RoleNeutral))
		assert.NotContains(t, got, "@JsonKey")
		assert.NotContains(t, got, "import ")
	})
}

func TestGenerate_NullableRequest(t *testing.T) {
	cfg := config.NewConfig()
	schema := &models.ClassSchema{
		Name: "ARequest",
		Role: models.RoleRequest,
		Fields: []models.FieldSchema{
			{SourceKey: "a", Identifier: "a", Type: dynamicType, Nullable: true},
		},
	}

	want := `class ARequest {
  final dynamic a;

  const ARequest({
    required this.a,
  });

  Map<String, dynamic> toJson() {
    return {
      'a': a,
    };
  }
}
`
	assertCode(t, want, NewGeneratorWithConfig(cfg).Generate(schema))
}

func TestGenerate_NullableCollections(t *testing.T) {
	schema := &models.ClassSchema{
		Name: "Order",
		Role: models.RoleNeutral,
		Fields: []models.FieldSchema{
			{SourceKey: "note", Identifier: "note", Type: stringType, Nullable: true},
			{SourceKey: "lines", Identifier: "lines", Type: models.ListOf(models.ClassRef("OrderLinesItem")), Nullable: true},
			{SourceKey: "grid", Identifier: "grid", Type: models.ListOf(models.ListOf(numType))},
		},
		Nested: []*models.ClassSchema{
			{Name: "OrderLinesItem", Role: models.RoleNeutral},
		},
	}

	want := `class Order {
  final String? note;
  final List<OrderLinesItem>? lines;
  final List<List<num>> grid;

  const Order({
    required this.note,
    required this.lines,
    required this.grid,
  });

  factory Order.fromJson(Map<String, dynamic> json) {
    return Order(
      note: json['note'] as String?,
      lines: json['lines'] == null ? null : (json['lines'] as List).map((e) => OrderLinesItem.fromJson(e as Map<String, dynamic>)).toList(),
      grid: (json['grid'] as List).map((e) => List<num>.from(e as List)).toList(),
    );
  }

  Map<String, dynamic> toJson() {
    return {
      'note': note,
      'lines': lines?.map((e) => e.toJson()).toList(),
      'grid': grid,
    };
  }
}

class OrderLinesItem {
  const OrderLinesItem();

  factory OrderLinesItem.fromJson(Map<String, dynamic> json) {
    return const OrderLinesItem();
  }

  Map<String, dynamic> toJson() {
    return <String, dynamic>{};
  }
}
`
	assertCode(t, want, NewGenerator().Generate(schema))
}

func TestGenerate_RegularExtras(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Model.GenerateCopyWith = true
	cfg.Model.GenerateToString = true
	cfg.Model.GenerateEquatable = true

	schema := &models.ClassSchema{
		Name: "FlagResponse",
		Role: models.RoleResponse,
		Fields: []models.FieldSchema{
			{SourceKey: "on", Identifier: "on", Type: boolType},
			{SourceKey: "extra", Identifier: "extra", Type: dynamicType, Nullable: true},
		},
	}

	want := `import 'package:equatable/equatable.dart';

class FlagResponse extends Equatable {
  final bool on;
  final dynamic extra;

  const FlagResponse({
    required this.on,
    required this.extra,
  });

  factory FlagResponse.fromJson(Map<String, dynamic> json) {
    return FlagResponse(
      on: json['on'] as bool,
      extra: json['extra'],
    );
  }

  FlagResponse copyWith({
    bool? on,
    dynamic extra,
  }) {
    return FlagResponse(
      on: on ?? this.on,
      extra: extra ?? this.extra,
    );
  }

  @override
  String toString() => 'FlagResponse(on: $on, extra: $extra)';

  @override
  List<Object?> get props => [on, extra];
}
`
	assertCode(t, want, NewGeneratorWithConfig(cfg).Generate(schema))
}

func TestGenerate_Freezed(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Model.UseFreezed = true
	cfg.Model.GenerateCopyWith = true
	cfg.Model.GenerateEquatable = true
	cfg.Model.GenerateToString = true

	gen := NewGeneratorWithConfig(cfg)
	assert.Equal(t, StrategyFreezed, gen.Strategy())

	want := `import 'package:freezed_annotation/freezed_annotation.dart';

part 'user.freezed.dart';
part 'user.g.dart';

@freezed
class User with _$User {
  const factory User({
    required num id,
    @JsonKey(name: 'first_name') required String firstName,
    required List<String> tags,
    required UserAddress address,
  }) = _User;

  factory User.fromJson(Map<String, dynamic> json) =>
      _$UserFromJson(json);
}

@freezed
class UserAddress with _$UserAddress {
  const factory UserAddress({
    required String city,
  }) = _UserAddress;

  factory UserAddress.fromJson(Map<String, dynamic> json) =>
      _$UserAddressFromJson(json);
}
`
	assertCode(t, want, gen.Generate(userSchema(models.RoleRequest)))
}

func TestGenerate_FreezedWithoutJSON(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Model.UseFreezed = true
	cfg.Model.GenerateJSONAnnotation = false

	schema := &models.ClassSchema{
		Name: "PingResponse",
		Role: models.RoleResponse,
		Fields: []models.FieldSchema{
			{SourceKey: "at", Identifier: "at", Type: stringType, Nullable: true},
		},
	}

	want := `import 'package:freezed_annotation/freezed_annotation.dart';

part 'ping_response.freezed.dart';

@freezed
class PingResponse with _$PingResponse {
  const factory PingResponse({
    required String? at,
  }) = _PingResponse;
}
`
	assertCode(t, want, NewGeneratorWithConfig(cfg).Generate(schema))

	cfg.Model.AddPartStatement = false
	got := NewGeneratorWithConfig(cfg).Generate(schema)
	assert.NotContains(t, got, "part ")
}

func TestGenerate_FreezedEmptyClass(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Model.UseFreezed = true
	cfg.Model.AddPartStatement = false

	got := NewGeneratorWithConfig(cfg).Generate(&models.ClassSchema{Name: "Empty"})
	assert.Contains(t, got, "  const factory Empty() = _Empty;\n")
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := NewGenerator()
	first := gen.Generate(userSchema(models.RoleNeutral))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, gen.Generate(userSchema(models.RoleNeutral)))
	}
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "regular", StrategyRegular.String())
	assert.Equal(t, "freezed", StrategyFreezed.String())
}
