package aarogyam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ResourcesService handles generic FHIR-style resources. Payloads are
// opaque to the client; only the resourceType and id discriminators are
// interpreted, for lookup paths and display grouping.
type ResourcesService struct {
	client *Client
}

// Add stores a raw FHIR resource. The payload must be valid JSON and is
// posted as-is; invalid payloads are rejected without issuing a request.
func (s *ResourcesService) Add(ctx context.Context, resource json.RawMessage) (*Resource, error) {
	if err := validateJSONPayload("resource", resource); err != nil {
		return nil, err
	}

	var resp Resource
	if err := s.client.post(ctx, "/add_resource", resource, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get retrieves one resource by type and id.
func (s *ResourcesService) Get(ctx context.Context, resourceType, id string) (*Resource, error) {
	if err := requireFields("resource_type", resourceType, "id", id); err != nil {
		return nil, err
	}

	var resp Resource
	path := fmt.Sprintf("/get_resource/%s/%s", url.PathEscape(resourceType), url.PathEscape(id))
	if err := s.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListByType returns all resources of one type.
func (s *ResourcesService) ListByType(ctx context.Context, resourceType string) ([]Resource, error) {
	if err := requireFields("resource_type", resourceType); err != nil {
		return nil, err
	}

	var resp []Resource
	if err := s.client.get(ctx, "/get_resources/"+url.PathEscape(resourceType), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Filter returns resources of one type whose named field matches a value.
func (s *ResourcesService) Filter(ctx context.Context, resourceType, field, value string) ([]Resource, error) {
	if err := requireFields("resource_type", resourceType, "field", field, "value", value); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("field", field)
	params.Set("value", value)
	path := fmt.Sprintf("/filter_resources/%s?%s", url.PathEscape(resourceType), params.Encode())

	var resp []Resource
	if err := s.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes a resource by type and id.
func (s *ResourcesService) Delete(ctx context.Context, resourceType, id string) (*StatusResult, error) {
	if err := requireFields("resource_type", resourceType, "id", id); err != nil {
		return nil, err
	}

	var resp StatusResult
	path := fmt.Sprintf("/delete_resource/%s/%s", url.PathEscape(resourceType), url.PathEscape(id))
	if err := s.client.delete(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
