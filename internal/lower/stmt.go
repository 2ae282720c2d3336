package lower

import (
	"mipscc/internal/ast"
	"mipscc/internal/cerr"
	"mipscc/internal/ctype"
	"mipscc/internal/ir"
	"mipscc/internal/symtab"
)

// LowerStmt lowers s, appending IR into env.B. Scoping, loop
// break/continue destinations, and switch dispatch follow spec §4.4's
// "statement lowering" rules.
func LowerStmt(env *Env, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Block:
		return lowerBlock(env, n)
	case *ast.If:
		return lowerIf(env, n)
	case *ast.While:
		return lowerWhile(env, n)
	case *ast.DoWhile:
		return lowerDoWhile(env, n)
	case *ast.For:
		return lowerFor(env, n)
	case *ast.Switch:
		return lowerSwitch(env, n)
	case *ast.ReturnStmt:
		return lowerReturn(env, n)
	case *ast.BreakStmt:
		return lowerBreak(env, n)
	case *ast.ContinueStmt:
		return lowerContinue(env, n)
	case *ast.ExprStmt:
		_, err := MakeIR(env, n.Expr)
		return err
	case *ast.DeclStmt:
		return lowerDeclStmt(env, n.Decl)
	}
	return cerr.InternalInvariantf(s.Line(), "LowerStmt: unhandled statement %T", s)
}

func lowerBlock(env *Env, n *ast.Block) error {
	var err error
	env.Vars.WithScope(func() {
		for _, st := range n.Stmts {
			if err != nil {
				return
			}
			err = LowerStmt(env, st)
		}
	})
	return err
}

func lowerIf(env *Env, n *ast.If) error {
	cond, err := MakeIR(env, n.Cond)
	if err != nil {
		return err
	}
	elseLabel := env.B.NewLabel()
	env.B.Emit(&ir.GotoIfEqual{Target: elseLabel, Var: cond, Value: 0})

	if err := LowerStmt(env, n.Then); err != nil {
		return err
	}

	if n.Else == nil {
		env.B.Emit(&ir.Label{Name: elseLabel})
		return nil
	}

	endLabel := env.B.NewLabel()
	env.B.Emit(&ir.Goto{Target: endLabel})
	env.B.Emit(&ir.Label{Name: elseLabel})
	if err := LowerStmt(env, n.Else); err != nil {
		return err
	}
	env.B.Emit(&ir.Label{Name: endLabel})
	return nil
}

func lowerWhile(env *Env, n *ast.While) error {
	top := env.B.NewLabel()
	end := env.B.NewLabel()

	oldBreak, oldContinue := env.Vars.BreakDestination(), env.Vars.ContinueDestination()
	env.Vars.SetLoopDestinations(end, top)
	defer env.Vars.SetLoopDestinations(oldBreak, oldContinue)

	env.B.Emit(&ir.Label{Name: top})
	cond, err := MakeIR(env, n.Cond)
	if err != nil {
		return err
	}
	env.B.Emit(&ir.GotoIfEqual{Target: end, Var: cond, Value: 0})
	if err := LowerStmt(env, n.Body); err != nil {
		return err
	}
	env.B.Emit(&ir.Goto{Target: top})
	env.B.Emit(&ir.Label{Name: end})
	return nil
}

func lowerDoWhile(env *Env, n *ast.DoWhile) error {
	top := env.B.NewLabel()
	condLabel := env.B.NewLabel()
	end := env.B.NewLabel()

	oldBreak, oldContinue := env.Vars.BreakDestination(), env.Vars.ContinueDestination()
	env.Vars.SetLoopDestinations(end, condLabel)
	defer env.Vars.SetLoopDestinations(oldBreak, oldContinue)

	env.B.Emit(&ir.Label{Name: top})
	if err := LowerStmt(env, n.Body); err != nil {
		return err
	}
	env.B.Emit(&ir.Label{Name: condLabel})
	cond, err := MakeIR(env, n.Cond)
	if err != nil {
		return err
	}
	falseEnd := env.B.NewLabel()
	env.B.Emit(&ir.GotoIfEqual{Target: falseEnd, Var: cond, Value: 0})
	env.B.Emit(&ir.Goto{Target: top})
	env.B.Emit(&ir.Label{Name: falseEnd})
	env.B.Emit(&ir.Label{Name: end})
	return nil
}

func lowerFor(env *Env, n *ast.For) error {
	var err error
	env.Vars.WithScope(func() {
		if n.Init != nil {
			if e := LowerStmt(env, n.Init); e != nil {
				err = e
				return
			}
		}

		top := env.B.NewLabel()
		post := env.B.NewLabel()
		end := env.B.NewLabel()

		oldBreak, oldContinue := env.Vars.BreakDestination(), env.Vars.ContinueDestination()
		env.Vars.SetLoopDestinations(end, post)
		defer env.Vars.SetLoopDestinations(oldBreak, oldContinue)

		env.B.Emit(&ir.Label{Name: top})
		if n.Cond != nil {
			cond, e := MakeIR(env, n.Cond)
			if e != nil {
				err = e
				return
			}
			env.B.Emit(&ir.GotoIfEqual{Target: end, Var: cond, Value: 0})
		}
		if e := LowerStmt(env, n.Body); e != nil {
			err = e
			return
		}
		env.B.Emit(&ir.Label{Name: post})
		if n.Post != nil {
			if _, e := MakeIR(env, n.Post); e != nil {
				err = e
				return
			}
		}
		env.B.Emit(&ir.Goto{Target: top})
		env.B.Emit(&ir.Label{Name: end})
	})
	return err
}

// lowerSwitch lowers to a chain of GotoIfEqual against the discriminant
// into per-case labels, with default as the fall-through target, per
// spec §4.4.
func lowerSwitch(env *Env, n *ast.Switch) error {
	disc, err := MakeIR(env, n.Discriminant)
	if err != nil {
		return err
	}
	end := env.B.NewLabel()

	oldBreak, oldContinue := env.Vars.BreakDestination(), env.Vars.ContinueDestination()
	env.Vars.SetLoopDestinations(end, oldContinue)
	defer env.Vars.SetLoopDestinations(oldBreak, oldContinue)

	labels := make([]string, len(n.Cases))
	defaultIdx := -1
	for i, c := range n.Cases {
		if c.IsDefault {
			defaultIdx = i
			continue
		}
		labels[i] = env.B.NewLabel()
		env.B.Emit(&ir.GotoIfEqual{Target: labels[i], Var: disc, Value: int32(c.Value)})
	}
	if defaultIdx >= 0 {
		labels[defaultIdx] = env.B.NewLabel()
		env.B.Emit(&ir.Goto{Target: labels[defaultIdx]})
	} else {
		env.B.Emit(&ir.Goto{Target: end})
	}

	for i, c := range n.Cases {
		env.B.Emit(&ir.Label{Name: labels[i]})
		for _, st := range c.Body {
			if err := LowerStmt(env, st); err != nil {
				return err
			}
		}
	}
	env.B.Emit(&ir.Label{Name: end})
	return nil
}

func lowerReturn(env *Env, n *ast.ReturnStmt) error {
	if n.Value == nil {
		env.B.Emit(&ir.Return{})
		return nil
	}
	v, err := MakeIR(env, n.Value)
	if err != nil {
		return err
	}
	env.B.Emit(&ir.Return{Var: v, HasVar: true})
	return nil
}

func lowerBreak(env *Env, n *ast.BreakStmt) error {
	dest := env.Vars.BreakDestination()
	if dest == "" {
		return cerr.InvalidOperandf(n.Line(), "break outside a loop or switch")
	}
	env.B.Emit(&ir.Goto{Target: dest})
	return nil
}

func lowerContinue(env *Env, n *ast.ContinueStmt) error {
	dest := env.Vars.ContinueDestination()
	if dest == "" {
		return cerr.InvalidOperandf(n.Line(), "continue outside a loop")
	}
	env.B.Emit(&ir.Goto{Target: dest})
	return nil
}

// lowerDeclStmt allocates a stack slot for a local declaration and emits
// its initializer (if any) as an Assign to the slot's address, per spec
// §4.4. Arrays are allocated with stride per §3.
func lowerDeclStmt(env *Env, d *ast.VariableDecl) error {
	if d.IsArray {
		arr := symtab.ArrayType{ElementType: d.Type, Count: d.ArrayCount}
		env.Stack.DeclareArray(d.Name, arr)
		if !env.Vars.Declare(d.Name, symtab.Binding{Alias: d.Name, Type: d.Type}) {
			return cerr.Redeclarationf(d.Line(), "redeclaration of %q", d.Name)
		}
		return nil
	}

	env.Stack.Declare(d.Name, d.Type)
	if !env.Vars.Declare(d.Name, symtab.Binding{Alias: d.Name, Type: d.Type}) {
		return cerr.Redeclarationf(d.Line(), "redeclaration of %q", d.Name)
	}
	if d.Init == nil {
		return nil
	}

	initType, err := GetType(env, d.Init)
	if err != nil {
		return err
	}
	initVal, err := MakeIR(env, d.Init)
	if err != nil {
		return err
	}
	addr := env.newTemp(ctype.NewPointer(d.Type))
	env.B.Emit(&ir.AddressOf{Dst: addr, Src: d.Name})
	env.B.Emit(&ir.Assign{Dst: addr, Src: initVal, ElemType: d.Type, SrcType: initType})
	return nil
}
