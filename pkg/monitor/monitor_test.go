package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndUpdate(t *testing.T) {
	m := NewMonitor(nil)
	m.RegisterComponent(ComponentBatch)

	s := m.GetStatus(ComponentBatch)
	require.NotNil(t, s)
	assert.Equal(t, StatusUnknown, s.Status)

	m.UpdateStatus(ComponentBatch, StatusHealthy, "")
	assert.Equal(t, StatusHealthy, m.GetStatus(ComponentBatch).Status)

	// 重复注册不重置状态
	m.RegisterComponent(ComponentBatch)
	assert.Equal(t, StatusHealthy, m.GetStatus(ComponentBatch).Status)

	assert.Nil(t, m.GetStatus("missing"))
}

func TestAlertOnTransition(t *testing.T) {
	var alerts []string
	m := NewMonitor(func(component, status, message string) {
		alerts = append(alerts, component+":"+status)
	})

	m.UpdateStatus(ComponentImagen, StatusDegraded, "timeout")
	m.UpdateStatus(ComponentImagen, StatusDegraded, "timeout again")
	m.UpdateStatus(ComponentImagen, StatusHealthy, "")
	m.UpdateStatus(ComponentImagen, StatusUnhealthy, "no key")

	assert.Equal(t, []string{"imagen:degraded", "imagen:unhealthy"}, alerts)
}

func TestOverall(t *testing.T) {
	m := NewMonitor(nil)
	assert.Equal(t, StatusHealthy, m.Overall())

	m.UpdateStatus(ComponentBatch, StatusHealthy, "")
	m.UpdateStatus(ComponentSweep, StatusDegraded, "")
	assert.Equal(t, StatusDegraded, m.Overall())

	m.UpdateStatus(ComponentImagen, StatusUnhealthy, "")
	assert.Equal(t, StatusUnhealthy, m.Overall())
}

func TestGetAllStatusSorted(t *testing.T) {
	m := NewMonitor(nil)
	m.RegisterComponent(ComponentSweep)
	m.RegisterComponent(ComponentBatch)
	m.RegisterComponent(ComponentImagen)

	all := m.GetAllStatus()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"batch", "imagen", "sweep"},
		[]string{all[0].Component, all[1].Component, all[2].Component})
}
