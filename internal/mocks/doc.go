// Package mocks holds testify mocks of the domain repositories, services and infrastructure ports.
package mocks
