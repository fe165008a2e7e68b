package content

import "fmt"

type (
	AssetNotFound struct {
		Path string
	}
)

func (a AssetNotFound) Error() string {
	return fmt.Sprintf("asset %v not found", a.Path)
}
