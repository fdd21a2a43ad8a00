package schema

// Equal compares two nodes structurally.
// References are resolved first, but keep their own flags: a nullable or optional reference
// differs from a plain one to the same target. Objects compare their resolved properties regardless of order.
// Roots also compare versions.
func Equal(a, b Property) (bool, error) {
	return equal(a, b, newTrail())
}

func equal(a, b Property, t *trail) (bool, error) {
	da, err := deref(a)
	if err != nil {
		return false, err
	}
	db, err := deref(b)
	if err != nil {
		return false, err
	}

	ba, bb := effective(a, da), effective(b, db)
	if da.Kind() != db.Kind() || !ba.same(&bb) {
		return false, nil
	}
	a, b = da, db

	ra, aIsRoot := a.(Root)
	rb, bIsRoot := b.(Root)
	if aIsRoot && bIsRoot && ra.Version() != rb.Version() {
		return false, nil
	}

	switch a.Kind() {
	case KindObject:
		return equalObjects(asObject(a), asObject(b), t)
	case KindArray:
		return equalItems(itemOf(a), itemOf(b), t)
	default:
		return true, nil
	}
}

func equalObjects(a, b *Object, t *trail) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}

	pa, err := a.resolve(t)
	if err != nil {
		return false, err
	}
	pb, err := b.resolve(t)
	if err != nil {
		return false, err
	}
	if pa.Len() != pb.Len() {
		return false, nil
	}

	if err := t.push(a); err != nil {
		return false, err
	}
	defer t.pop()

	for pair := pa.Oldest(); pair != nil; pair = pair.Next() {
		other, ok := pb.Get(pair.Key)
		if !ok {
			return false, nil
		}
		same, err := equal(pair.Value, other, t)
		if err != nil || !same {
			return false, err
		}
	}
	return true, nil
}

func equalItems(a, b Item, t *trail) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}

	ka, aIsKind := a.(Kind)
	kb, bIsKind := b.(Kind)
	if aIsKind || bIsKind {
		return aIsKind && bIsKind && ka == kb, nil
	}

	pa, aIsProp := a.(Property)
	pb, bIsProp := b.(Property)
	if !aIsProp || !bIsProp {
		return false, nil
	}
	return equal(pa, pb, t)
}

func deref(p Property) (Property, error) {
	ref, ok := p.(*Reference)
	if !ok {
		return p, nil
	}
	return ref.Resolve()
}

// effective merges the flags of a node with the body it resolves to.
// A reference contributes optional and nullable, and its description when set.
func effective(p, resolved Property) base {
	res := *resolved.common()
	if p == resolved {
		return res
	}
	own := p.common()
	res.optional = own.optional
	res.nullable = own.nullable
	if own.description != "" {
		res.description = own.description
	}
	return res
}

func asObject(p Property) *Object {
	switch v := p.(type) {
	case *Object:
		return v
	case *Definition:
		return &v.Object
	}
	return nil
}

func itemOf(p Property) Item {
	switch v := p.(type) {
	case *Array:
		return v.item
	case *Collection:
		return v.of
	}
	return nil
}
