package term

// Lift shifts every free de Bruijn index in t (those >= cutoff, 1-based)
// upward by n. Used when moving a term under additional binders.
func Lift(t Term, n, cutoff int) Term {
	if n == 0 {
		return t
	}
	switch x := t.(type) {
	case *Rel:
		if x.N >= cutoff {
			return &Rel{N: x.N + n}
		}
		return x
	case *Const, *Construct, *Ind, *Sort:
		return t
	case *App:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Lift(a, n, cutoff)
		}
		return &App{Head: Lift(x.Head, n, cutoff), Args: args}
	case *Lambda:
		return &Lambda{Name: x.Name, Type: Lift(x.Type, n, cutoff), Body: Lift(x.Body, n, cutoff+1)}
	case *Prod:
		return &Prod{Name: x.Name, Type: Lift(x.Type, n, cutoff), Body: Lift(x.Body, n, cutoff+1)}
	case *LetIn:
		return &LetIn{
			Name:  x.Name,
			Value: Lift(x.Value, n, cutoff),
			Type:  Lift(x.Type, n, cutoff),
			Body:  Lift(x.Body, n, cutoff+1),
		}
	case *Case:
		branches := make([]Term, len(x.Branches))
		for i, b := range x.Branches {
			branches[i] = Lift(b, n, cutoff)
		}
		return &Case{Scrutinee: Lift(x.Scrutinee, n, cutoff), Branches: branches}
	default:
		return t
	}
}

// Subst1 substitutes arg for the variable bound at index 1 in body,
// adjusting the remaining free indices. This is the contraction step of a
// beta redex: Subst1(b, a) computes b[1 := a].
func Subst1(body, arg Term) Term {
	return subst(body, 1, arg)
}

func subst(t Term, depth int, arg Term) Term {
	switch x := t.(type) {
	case *Rel:
		switch {
		case x.N == depth:
			return Lift(arg, depth-1, 1)
		case x.N > depth:
			return &Rel{N: x.N - 1}
		default:
			return x
		}
	case *Const, *Construct, *Ind, *Sort:
		return t
	case *App:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = subst(a, depth, arg)
		}
		// The head may reduce to the substituted term; reflatten.
		return MkApp(subst(x.Head, depth, arg), args...)
	case *Lambda:
		return &Lambda{Name: x.Name, Type: subst(x.Type, depth, arg), Body: subst(x.Body, depth+1, arg)}
	case *Prod:
		return &Prod{Name: x.Name, Type: subst(x.Type, depth, arg), Body: subst(x.Body, depth+1, arg)}
	case *LetIn:
		return &LetIn{
			Name:  x.Name,
			Value: subst(x.Value, depth, arg),
			Type:  subst(x.Type, depth, arg),
			Body:  subst(x.Body, depth+1, arg),
		}
	case *Case:
		branches := make([]Term, len(x.Branches))
		for i, b := range x.Branches {
			branches[i] = subst(b, depth, arg)
		}
		return &Case{Scrutinee: subst(x.Scrutinee, depth, arg), Branches: branches}
	default:
		return t
	}
}
