package formjson

// Reset restores every field below root to the default it was declared with.
// Buttons are left alone, resetting them would restore their labels.
func (c *Converter) Reset(root any, opts *ResetOptions) error {
	if opts == nil {
		opts = &ResetOptions{}
	}
	t, err := c.tree(root, opts.ExcludeLinkedFormElements, nil)
	if err != nil {
		return err
	}
	resetTree(t, opts.TriggerChangeEvent)
	return nil
}

// Clear empties every field below root: text is removed, checkboxes and
// radios are unchecked and no option stays selected. Buttons are left alone.
func (c *Converter) Clear(root any, opts *ClearOptions) error {
	if opts == nil {
		opts = &ClearOptions{}
	}
	t, err := c.tree(root, opts.ExcludeLinkedFormElements, nil)
	if err != nil {
		return err
	}
	clearTree(t, opts.TriggerChangeEvent)
	return nil
}

func resetTree(t *fieldTree, trigger bool) {
	t.each(func(_ string, n fieldNode) {
		switch n := n.(type) {
		case *nestedNode:
			resetTree(n.tree, trigger)
		case *radioGroup:
			checkRadio(n, func(_ int, el Element) bool { return el.DefaultChecked() }, trigger)
		case *leafNode:
			resetLeaf(n, trigger)
		}
	})
}

func resetLeaf(n *leafNode, trigger bool) {
	el := n.el
	switch {
	case isButton(el):
	case isCheckedType(n.inputType):
		setChecked(el, el.DefaultChecked(), trigger)
	case isSelect(el):
		var defaults []any
		for _, opt := range el.Options() {
			if opt.DefaultSelected() {
				defaults = append(defaults, opt.Value())
			}
		}
		// A single select always shows an option, the first enabled one.
		if len(defaults) == 0 && !el.Multiple() {
			for _, opt := range el.Options() {
				if !opt.Disabled() {
					defaults = append(defaults, opt.Value())
					break
				}
			}
		}
		if selectOptions(el, defaults) && trigger {
			el.DispatchChange()
		}
	default:
		if v, ok := el.Attr("value"); ok && v != "" {
			setLeaf(n, v, trigger)
			return
		}
		setLeaf(n, el.DefaultValue(), trigger)
	}
}

func clearTree(t *fieldTree, trigger bool) {
	t.each(func(_ string, n fieldNode) {
		switch n := n.(type) {
		case *nestedNode:
			clearTree(n.tree, trigger)
		case *radioGroup:
			setValue(n, nil, trigger)
		case *leafNode:
			if isButton(n.el) {
				return
			}
			setLeaf(n, nil, trigger)
		}
	})
}
