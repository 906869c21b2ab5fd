/*
 * Copyright 2025 The DocVault Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/internal/version"
)

const (
	namespace      = "docvault"
	methodLabel    = "rpc_method"
	codeLabel      = "rpc_code"
	operationLabel = "operation"
	taskTypeLabel  = "task_type"
	eventTypeLabel = "event_type"
)

// Metrics manages the metric information that DocVault is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion        *prometheus.GaugeVec
	serverHandledCounter *prometheus.CounterVec

	vaultOperationsTotal  *prometheus.CounterVec
	vaultOperationSeconds *prometheus.HistogramVec
	vaultEventsTotal      *prometheus.CounterVec
	eventSubscribersTotal prometheus.Gauge
	backgroundGoroutines  *prometheus.GaugeVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		serverHandledCounter: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "server_handled_total",
			Help:      "Total number of RPCs completed on the server, regardless of success or failure.",
		}, []string{methodLabel, codeLabel}),
		vaultOperationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "operations_total",
			Help:      "Total number of completed vault mutations.",
		}, []string{operationLabel}),
		vaultOperationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "operation_seconds",
			Help:      "The response time of vault mutations.",
		}, []string{operationLabel}),
		vaultEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "vault_events_total",
			Help:      "Total number of vault events delivered to subscribers.",
		}, []string{eventTypeLabel}),
		eventSubscribersTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "event_subscribers_total",
			Help:      "The number of active vault event subscribers.",
		}),
		backgroundGoroutines: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "goroutines_total",
			Help:      "The total number of background goroutines attached by task type.",
		}, []string{taskTypeLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddServerHandledCounter adds the number of RPCs completed on the server.
func (m *Metrics) AddServerHandledCounter(method, code string) {
	m.serverHandledCounter.With(prometheus.Labels{
		methodLabel: method,
		codeLabel:   code,
	}).Inc()
}

// AddVaultOperation adds the number of completed vault mutations.
func (m *Metrics) AddVaultOperation(operation string) {
	m.vaultOperationsTotal.With(prometheus.Labels{
		operationLabel: operation,
	}).Inc()
}

// ObserveVaultOperationSeconds adds an observation for the response time of
// a vault mutation.
func (m *Metrics) ObserveVaultOperationSeconds(operation string, seconds float64) {
	m.vaultOperationSeconds.With(prometheus.Labels{
		operationLabel: operation,
	}).Observe(seconds)
}

// AddVaultEvents adds the number of vault events delivered to subscribers.
func (m *Metrics) AddVaultEvents(eventType events.VaultEventType) {
	m.vaultEventsTotal.With(prometheus.Labels{
		eventTypeLabel: string(eventType),
	}).Inc()
}

// AddEventSubscribers adds the number of active event subscribers.
func (m *Metrics) AddEventSubscribers() {
	m.eventSubscribersTotal.Inc()
}

// RemoveEventSubscribers removes the number of active event subscribers.
func (m *Metrics) RemoveEventSubscribers() {
	m.eventSubscribersTotal.Dec()
}

// AddBackgroundGoroutines adds the number of background goroutines attached
// for the given task type.
func (m *Metrics) AddBackgroundGoroutines(taskType string) {
	m.backgroundGoroutines.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Inc()
}

// RemoveBackgroundGoroutines removes the number of background goroutines
// attached for the given task type.
func (m *Metrics) RemoveBackgroundGoroutines(taskType string) {
	m.backgroundGoroutines.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Dec()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
