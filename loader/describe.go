package loader

import (
	"go/ast"
	"go/types"
	"strings"

	"go.pact.im/x/queryparams/codegen"
)

// describe returns the record description for a type declaration. The scope
// package is used to inspect existing methods and may be nil.
func describe(spec *ast.TypeSpec, pkg *types.Package) codegen.Record {
	r := codegen.Record{
		Name:       codegen.GoIdentifier(spec.Name.Name),
		TypeParams: typeParamList(spec.TypeParams),
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		r.Shape = codegen.RecordStruct
		for _, field := range t.Fields.List {
			if len(field.Names) == 0 {
				r.Shape = codegen.RecordEmbedded
				r.Fields = nil
				break
			}
			typ := codegen.GoType(types.ExprString(field.Type))
			for _, name := range field.Names {
				r.Fields = append(r.Fields, codegen.Field{
					Name: codegen.GoIdentifier(name.Name),
					Type: typ,
				})
			}
		}
	case *ast.InterfaceType:
		r.Shape = codegen.RecordSum
	default:
		r.Shape = codegen.RecordNonStruct
	}
	if spec.Assign.IsValid() {
		r.Shape = codegen.RecordNonStruct
		r.Fields = nil
	}

	r.PointerReceiver = hasPointerMethods(pkg, spec.Name.Name)
	return r
}

// typeParamList formats type parameters as a Go type parameter list, e.g.
// "K comparable, V any".
func typeParamList(params *ast.FieldList) codegen.GoTypeParamList {
	if params == nil {
		return ""
	}
	var groups []string
	for _, field := range params.List {
		names := make([]string, 0, len(field.Names))
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
		groups = append(groups, strings.Join(names, ", ")+" "+types.ExprString(field.Type))
	}
	return codegen.GoTypeParamList(strings.Join(groups, ", "))
}

// hasPointerMethods reports whether the named type declares a method with a
// pointer receiver, excluding the generated method.
func hasPointerMethods(pkg *types.Package, name string) bool {
	if pkg == nil {
		return false
	}
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return false
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return false
	}
	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() == codegen.MethodName {
			continue
		}
		sig, ok := m.Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			continue
		}
		if _, ok := sig.Recv().Type().(*types.Pointer); ok {
			return true
		}
	}
	return false
}
