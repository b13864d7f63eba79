package scenedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *mockModule) Install(app *App, cmd *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&mockModule{})
	assert.Len(t, builder.modules, 1)
}

func TestAppBuilder_Build_InstallsInOrder(t *testing.T) {
	var order []string
	m1 := &mockModule{order: &order, name: "first"}
	m2 := &mockModule{order: &order, name: "second"}

	NewAppBuilder().UseModule(m1, m2).Build()

	assert.True(t, m1.installed)
	assert.True(t, m2.installed)
	assert.Equal(t, []string{"first", "second"}, order)
}

type deferringModule struct {
	ran *bool
}

func (m deferringModule) Install(app *App, cmd *Commands) {
	cmd.Defer(func() { *m.ran = true })
}

func TestAppBuilder_Build_FlushesDeferred(t *testing.T) {
	ran := false
	NewAppBuilder().UseModule(deferringModule{ran: &ran}).Build()
	assert.True(t, ran)
}
