package inject

// AddOption adjusts where an item is registered.
type AddOption func(*addOptions)

type addOptions struct {
	order int
	group string
}

// Order sets the order number. Lower numbers render first; the default
// is 0.
func Order(n int) AddOption {
	return func(o *addOptions) {
		o.order = n
	}
}

// Group selects a named collection instead of the default group.
func Group(name string) AddOption {
	return func(o *addOptions) {
		o.group = name
	}
}

func collectOptions(opts []AddOption) addOptions {
	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (m *Manager) asset(url string) string {
	if m.resolver == nil {
		return url
	}
	return m.resolver.Asset(url)
}

// AddScriptFile registers a <script src> for url. Application-relative
// URLs ("~/...") are expanded by the configured Resolver.
func (m *Manager) AddScriptFile(url string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewScriptFile(m.asset(url))
	if err != nil {
		return err
	}
	c, err := m.ScriptFilesIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddStyleFile registers a style sheet link for url.
func (m *Manager) AddStyleFile(url string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewStyleFile(m.asset(url))
	if err != nil {
		return err
	}
	c, err := m.StyleFilesIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddMetaTag registers <meta name="name" content="content" />.
func (m *Manager) AddMetaTag(name, content string, opts ...AddOption) error {
	return m.AddMetaTagUsage(MetaName, name, content, opts...)
}

// AddMetaTagUsage registers a meta tag identified by usage.
func (m *Manager) AddMetaTagUsage(usage MetaUsage, name, content string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewMetaTag(usage, name, content)
	if err != nil {
		return err
	}
	c, err := m.MetaTagsIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddHiddenField registers a hidden input. A later value for the same
// name replaces the earlier one.
func (m *Manager) AddHiddenField(name, value string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewHiddenField(name, value)
	if err != nil {
		return err
	}
	c, err := m.HiddenFieldsIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddScriptBlock registers an anonymous script block that is always
// emitted.
func (m *Manager) AddScriptBlock(script string, opts ...AddOption) error {
	return m.AddKeyedScriptBlock("", script, opts...)
}

// AddKeyedScriptBlock registers a script block under key. A later block
// with the same key replaces the script.
func (m *Manager) AddKeyedScriptBlock(key, script string, opts ...AddOption) error {
	item, err := NewScriptBlock(key, script)
	if err != nil {
		return err
	}
	return m.addScriptItem(item, opts)
}

// AddArrayValue appends value to the script array name, converting it
// with ToScript. Strings are HTML-encoded unless the Manager was created
// with RawArrayStrings.
func (m *Manager) AddArrayValue(name string, value any, opts ...AddOption) error {
	lit, err := toScript(value, m.encode)
	if err != nil {
		return err
	}
	return m.AddArrayCode(name, Code(lit), opts...)
}

// AddArrayValues appends several values to the script array name.
func (m *Manager) AddArrayValues(name string, values []any, opts ...AddOption) error {
	elems := make([]string, 0, len(values))
	for _, v := range values {
		lit, err := toScript(v, m.encode)
		if err != nil {
			return err
		}
		elems = append(elems, lit)
	}
	item, err := NewArrayDeclaration(name, elems...)
	if err != nil {
		return err
	}
	return m.addScriptItem(item, opts)
}

// AddArrayCode appends a verbatim script expression to the array name.
func (m *Manager) AddArrayCode(name string, code Code, opts ...AddOption) error {
	item, err := NewArrayDeclaration(name, string(code))
	if err != nil {
		return err
	}
	return m.addScriptItem(item, opts)
}

func (m *Manager) addScriptItem(item ScriptItem, opts []AddOption) error {
	o := collectOptions(opts)
	c, err := m.ScriptBlocksIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddTemplateBlock registers a client template. The TemplateBlocks kind
// must be registered with the Manager's factory first.
func (m *Manager) AddTemplateBlock(id, content string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewTemplateBlock(id, content)
	if err != nil {
		return err
	}
	c, err := m.TemplateBlocksIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}

// AddPlaceholder registers raw content.
func (m *Manager) AddPlaceholder(content string, opts ...AddOption) error {
	o := collectOptions(opts)
	item, err := NewPlaceholder(content)
	if err != nil {
		return err
	}
	c, err := m.PlaceholdersIn(o.group)
	if err != nil {
		return err
	}
	return c.Add(item, o.order)
}
