package render

import "github.com/ByLCY/labelwrap/tile"

// Renderer 将预览页输出为最终文件，例如 SVG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(sheet *tile.Sheet) ([]byte, error)
}
