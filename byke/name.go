package byke

var _ = ValidateComponent[Name]()

// Name assigns a non unique name to an entity, helpful for debugging.
type Name struct {
	ComparableComponent[Name]
	Value string
}

func Named(name string) Name {
	return Name{Value: name}
}

func (n Name) String() string {
	return n.Value
}
