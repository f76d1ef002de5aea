// Package elaborate implements the Elaborator of spec.md §4.5: it
// compiles away every ClassDefinition and InstanceDefinitions block of
// an already-solved Explicit program into plain record types and plain
// functions (dictionary-passing translation), and rewrites every
// occurrence of an overloaded value name into an explicit application
// of the resolved class dictionary — producing a Program for which
// explicit.Program.IsClassFree reports true, the Printer's precondition
// (spec.md §6).
//
// Per spec.md §9's resolved Open Question, an instance's dictionary is
// always synthesized as a full lambda-abstraction over its context's
// superclass/predicate dictionaries, never as the placeholder shortcut
// of treating `dict_constructor = dict_record` when the context is
// non-empty: a context predicate genuinely needs a dictionary argument
// supplied by the caller, since the instance body cannot know which
// concrete dictionary will be threaded in until it is applied.
package elaborate

import (
	"fmt"

	"github.com/nguyentito/mpri13/ast/explicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/kinds"
	"github.com/nguyentito/mpri13/ledger"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

// Elaborator drives the class/instance compilation pass. It is built
// once per compilation run over the Environment the earlier
// declare/generate stages populated and the run's Ledger (spec.md
// §4.2/§4.6). The caller's Environment is never mutated: env gains a
// couple of record-type bindings for synthesized dictionary types as
// elaboration proceeds, but in the receiver's own copy. The Ledger is
// shared with the caller and is mutated in place: every class member
// and every top-level binding the Elaborator meets is recorded in it.
type Elaborator struct {
	env         typeenv.Environment
	ledger      *ledger.Ledger
	schemes     map[names.ValueName]types.TyScheme
	dictCounter int
}

// New returns an Elaborator over env and ledger.
func New(env typeenv.Environment, l *ledger.Ledger) *Elaborator {
	return &Elaborator{env: env, ledger: l, schemes: map[names.ValueName]types.TyScheme{}}
}

// predicateKey identifies one ambient dictionary binding in scope: the
// class it satisfies and the rigid type variable it satisfies it for.
type predicateKey struct {
	Class    names.TypeConName
	Variable names.TypeVarName
}

// dictTypeName, superField, and dictConstructorName follow spec.md
// §4.5's literal naming convention exactly, since scenarios S1-S4
// (spec.md §8) assert these names verbatim: `class_type_Eq`,
// `superclass_field_Ord_Eq`, `inst_dict_Eq_int`.
func dictTypeName(class names.TypeConName) names.TypeConName {
	return names.TypeConName(fmt.Sprintf("class_type_%s", class))
}

// superField names the record field that projects class's dictionary
// down to its super dictionary: `superclass_field_<class>_<super>`.
func superField(class, super names.TypeConName) names.LabelName {
	return names.LabelName(fmt.Sprintf("superclass_field_%s_%s", class, super))
}

func dictConstructorName(class, head names.TypeConName) names.ValueName {
	return names.ValueName(fmt.Sprintf("inst_dict_%s_%s", class, head))
}

func dictTypeFor(pred types.ClassPredicate) types.Type {
	return &types.TApp{Con: dictTypeName(pred.Class), Args: []types.Type{&types.TVar{Name: pred.Variable}}}
}

func (el *Elaborator) freshDictParam() names.ValueName {
	el.dictCounter++
	return names.ValueName(fmt.Sprintf("$d%d", el.dictCounter))
}

// Elaborate compiles prog's classes and instances away, returning a
// class-free program.
func (el *Elaborator) Elaborate(prog explicit.Program) (explicit.Program, error) {
	var out explicit.Program
	for _, block := range prog {
		switch b := block.(type) {
		case *explicit.ClassDefinition:
			blocks, err := el.elaborateClass(b)
			if err != nil {
				return nil, err
			}
			out = append(out, blocks...)

		case *explicit.InstanceDefinitions:
			blocks, err := el.elaborateInstances(b)
			if err != nil {
				return nil, err
			}
			out = append(out, blocks...)

		case *explicit.Definition:
			def, err := el.elaborateDefinition(b)
			if err != nil {
				return nil, err
			}
			out = append(out, def)

		default:
			out = append(out, block)
		}
	}
	return out, nil
}

// elaborateClass synthesizes the dictionary record type for a class
// declaration (one field per superclass dictionary, one per member)
// plus one accessor function per member: a DictAbs projecting its
// dictionary argument's corresponding field.
func (el *Elaborator) elaborateClass(b *explicit.ClassDefinition) ([]explicit.Block, error) {
	for i, si := range b.Supers {
		for j, sj := range b.Supers {
			if i != j && el.env.IsSuperclass(si, sj) {
				return nil, clserr.New(clserr.TheseTwoClassesMustNotBeInTheSameContext, b.Pos,
					"%q is already a superclass of %q; both listed as superclasses of %q", si, sj, b.Name)
			}
		}
	}
	if !b.IsConstructorClass {
		for _, m := range b.Members {
			if _, free := types.FreeVars(m.Type)[b.Param]; !free {
				return nil, clserr.New(clserr.InvalidOverloading, m.Pos,
					"class parameter %q does not occur in the type of member %q", b.Param, m.Label)
			}
		}
	}

	recordName := dictTypeName(b.Name)
	paramVar := &types.TVar{Pos: b.Pos, Name: b.Param}

	fields := make([]names.LabelName, 0, len(b.Supers)+len(b.Members))
	fieldTypes := make(map[names.LabelName]types.Type, len(b.Supers)+len(b.Members))
	fieldDecls := make([]explicit.FieldDecl, 0, len(b.Supers)+len(b.Members))
	for _, super := range b.Supers {
		label := superField(b.Name, super)
		t := &types.TApp{Pos: b.Pos, Con: dictTypeName(super), Args: []types.Type{paramVar}}
		fields = append(fields, label)
		fieldTypes[label] = t
		fieldDecls = append(fieldDecls, explicit.FieldDecl{Pos: b.Pos, Label: label, Type: t})
	}
	for _, m := range b.Members {
		label := m.Label
		fields = append(fields, label)
		fieldTypes[label] = m.Type
		fieldDecls = append(fieldDecls, explicit.FieldDecl{Pos: m.Pos, Label: label, Type: m.Type})
	}

	el.env = el.env.BindType(recordName, kinds.OfArity(1), nil)
	el.env = el.env.BindRecordType(recordName, []names.TypeVarName{b.Param}, fields, fieldTypes)

	dictType := &types.TApp{Pos: b.Pos, Con: recordName, Args: []types.Type{paramVar}}

	accessors := make([]explicit.ValueDef, len(b.Members))
	for i, m := range b.Members {
		scheme := types.TyScheme{
			Quantifiers: []names.TypeVarName{b.Param},
			Predicates:  []types.ClassPredicate{{Class: b.Name, Variable: b.Param}},
			Body:        types.NTyArrow(m.Pos, []types.Type{dictType}, m.Type),
		}
		param := names.ValueName("$d")
		body := &explicit.DictAbs{
			Pos:      m.Pos,
			Param:    param,
			DictType: dictType,
			Body: &explicit.RecordAccess{
				Pos:      m.Pos,
				Expr:     &explicit.Var{Pos: m.Pos, Name: param, Inferred: dictType},
				Label:    m.Label,
				Inferred: m.Type,
			},
			Inferred: scheme.Body,
		}
		valueName := names.ValueName(m.Label)
		if err := el.ledger.BindScheme(valueName, true); err != nil {
			return nil, err
		}
		el.schemes[valueName] = scheme
		accessors[i] = explicit.ValueDef{Pos: m.Pos, Name: valueName, Scheme: scheme, Body: body}
	}

	recordDecl := &explicit.TypeDefinitions{
		Pos: b.Pos,
		Types: []explicit.TypeDecl{{
			Pos:    b.Pos,
			Name:   recordName,
			Params: []names.TypeVarName{b.Param},
			Record: fieldDecls,
		}},
	}
	return []explicit.Block{recordDecl, &explicit.Definition{Pos: b.Pos, Bindings: accessors}}, nil
}

// elaborateInstances synthesizes one dictionary-constructor function
// per declared instance.
func (el *Elaborator) elaborateInstances(b *explicit.InstanceDefinitions) ([]explicit.Block, error) {
	defs := make([]explicit.ValueDef, len(b.Instances))
	for i, inst := range b.Instances {
		def, err := el.elaborateInstance(inst)
		if err != nil {
			return nil, err
		}
		defs[i] = def
	}
	return []explicit.Block{&explicit.Definition{Pos: b.Pos, Bindings: defs, Rec: true}}, nil
}

func (el *Elaborator) elaborateInstance(inst explicit.InstanceDef) (explicit.ValueDef, error) {
	classInfo, err := el.env.LookupClass(inst.Class)
	if err != nil {
		return explicit.ValueDef{}, err
	}

	headArgs := make([]types.Type, len(inst.Params))
	for i, p := range inst.Params {
		headArgs[i] = &types.TVar{Pos: inst.Pos, Name: p}
	}
	headType := &types.TApp{Pos: inst.Pos, Con: inst.Head, Args: headArgs}

	ambient := map[predicateKey]explicit.Expr{}
	dictParams := make([]names.ValueName, len(inst.Context))
	for i, pred := range inst.Context {
		d := el.freshDictParam()
		dictParams[i] = d
		ambient[predicateKey{Class: pred.Class, Variable: pred.Variable}] = &explicit.Var{Pos: inst.Pos, Name: d, Inferred: dictTypeFor(pred)}
	}

	argDictTypes := make([]types.Type, len(inst.Context))
	for i, pred := range inst.Context {
		argDictTypes[i] = dictTypeFor(pred)
	}

	fields := make([]explicit.FieldBinding, 0, len(classInfo.Supers)+len(inst.Members))
	for _, super := range classInfo.Supers {
		d, err := el.resolveDict(ambient, super, headType, inst.Pos)
		if err != nil {
			return explicit.ValueDef{}, err
		}
		fields = append(fields, explicit.FieldBinding{Label: superField(inst.Class, super), Value: d})
	}
	for _, m := range inst.Members {
		body, err := el.elaborateExpr(ambient, m.Value)
		if err != nil {
			return explicit.ValueDef{}, err
		}
		fields = append(fields, explicit.FieldBinding{Label: m.Label, Value: body})
	}

	dictType := &types.TApp{Pos: inst.Pos, Con: dictTypeName(inst.Class), Args: []types.Type{headType}}
	var body explicit.Expr = &explicit.RecordCon{Pos: inst.Pos, Name: dictTypeName(inst.Class), Fields: fields, Inferred: dictType}
	for i := len(inst.Context) - 1; i >= 0; i-- {
		pred := inst.Context[i]
		body = &explicit.DictAbs{
			Pos:      inst.Pos,
			Param:    dictParams[i],
			DictType: dictTypeFor(pred),
			Body:     body,
			Inferred: types.NTyArrow(inst.Pos, argDictTypes[i:], dictType),
		}
	}

	name := dictConstructorName(inst.Class, inst.Head)
	scheme := types.TyScheme{Quantifiers: inst.Params, Predicates: inst.Context, Body: types.NTyArrow(inst.Pos, argDictTypes, dictType)}
	el.schemes[name] = scheme
	return explicit.ValueDef{Pos: inst.Pos, Name: name, Scheme: scheme, Body: body}, nil
}

// elaborateDefinition rewrites an ordinary top-level binding group:
// every binding whose own scheme carries predicates is wrapped in a
// DictAbs chain over those predicates, and its body is walked to
// rewrite any overloaded Var occurrence it in turn contains.
func (el *Elaborator) elaborateDefinition(b *explicit.Definition) (*explicit.Definition, error) {
	for _, vd := range b.Bindings {
		el.schemes[vd.Name] = vd.Scheme
	}
	out := make([]explicit.ValueDef, len(b.Bindings))
	for i, vd := range b.Bindings {
		if err := el.ledger.BindScheme(vd.Name, len(vd.Scheme.Predicates) > 0); err != nil {
			return nil, err
		}

		ambient := map[predicateKey]explicit.Expr{}
		dictParams := make([]names.ValueName, len(vd.Scheme.Predicates))
		dictTypes := make([]types.Type, len(vd.Scheme.Predicates))
		for j, pred := range vd.Scheme.Predicates {
			d := el.freshDictParam()
			dictParams[j] = d
			dictTypes[j] = dictTypeFor(pred)
			ambient[predicateKey{Class: pred.Class, Variable: pred.Variable}] = &explicit.Var{Pos: vd.Pos, Name: d, Inferred: dictTypes[j]}
		}
		body, err := el.elaborateExpr(ambient, vd.Body)
		if err != nil {
			return nil, err
		}
		for j := len(dictParams) - 1; j >= 0; j-- {
			pred := vd.Scheme.Predicates[j]
			body = &explicit.DictAbs{
				Pos:      vd.Pos,
				Param:    dictParams[j],
				DictType: dictTypeFor(pred),
				Body:     body,
				Inferred: types.NTyArrow(vd.Pos, dictTypes[j:], vd.Scheme.Body),
			}
		}
		out[i] = explicit.ValueDef{Pos: vd.Pos, Name: vd.Name, Scheme: vd.Scheme, Body: body}
	}
	return &explicit.Definition{Pos: b.Pos, Bindings: out, Rec: b.Rec}, nil
}

// elaborateExpr rewrites every overloaded Var occurrence within e into a
// DictApp, resolving one dictionary argument per class predicate in the
// name's scheme against the ambient dictionaries currently in scope
// (spec.md §4.5). Ordinary (non-overloaded) Var occurrences, and every
// other expression form, pass through MapExpr unchanged.
func (el *Elaborator) elaborateExpr(ambient map[predicateKey]explicit.Expr, e explicit.Expr) (explicit.Expr, error) {
	var walkErr error
	out := explicit.MapExpr(e, func(node explicit.Expr) explicit.Expr {
		if walkErr != nil {
			return node
		}
		v, ok := node.(*explicit.Var)
		if !ok {
			return node
		}
		scheme, known := el.schemes[v.Name]
		if !known || len(scheme.Predicates) == 0 {
			return node
		}
		if len(v.TypeArgs) != len(scheme.Quantifiers) {
			walkErr = clserr.New(clserr.InvalidNumberOfTypeAbstraction, v.Pos,
				"%q expects %d type argument(s), got %d", v.Name, len(scheme.Quantifiers), len(v.TypeArgs))
			return node
		}
		sigma := make(types.Substitution, len(scheme.Quantifiers))
		for i, q := range scheme.Quantifiers {
			sigma[q] = v.TypeArgs[i]
		}
		dicts := make([]explicit.Expr, len(scheme.Predicates))
		for i, pred := range scheme.Predicates {
			at := types.Substitute(sigma, &types.TVar{Pos: v.Pos, Name: pred.Variable})
			d, err := el.resolveDict(ambient, pred.Class, at, v.Pos)
			if err != nil {
				walkErr = err
				return node
			}
			dicts[i] = d
		}
		return &explicit.DictApp{Pos: v.Pos, Fun: node, Dicts: dicts, Inferred: v.Inferred}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}
