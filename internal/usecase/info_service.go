package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"example.com/userapi/internal/domain"
)

type InfoService struct {
	name        string
	version     string
	description string
	now         func() time.Time
}

func NewInfoService(name, version, description string) *InfoService {
	return &InfoService{
		name:        name,
		version:     version,
		description: description,
		now:         time.Now,
	}
}

func (s *InfoService) Hello() domain.Greeting {
	return domain.Greeting{
		Message:   "Hello World from Go!",
		Status:    "success",
		Timestamp: s.now().UTC(),
	}
}

func (s *InfoService) Info(totalEndpoints int) domain.APIInfo {
	return domain.APIInfo{
		APIName:        s.name,
		Version:        s.version,
		Description:    s.description,
		TotalEndpoints: totalEndpoints,
	}
}

// Echo acknowledges an arbitrary payload and hands it back.
func (s *InfoService) Echo(payload any) domain.Echo {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte(fmt.Sprint(payload))
	}
	return domain.Echo{
		Success: true,
		Message: "Data received: " + string(body),
		Data:    payload,
	}
}
