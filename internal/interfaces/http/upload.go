package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
)

// formFileField nombre del campo multipart para archivos subidos.
const formFileField = "file"

// withFormFile abre el archivo del formulario y se lo pasa a fn con su nombre original.
func withFormFile(c *fiber.Ctx, fn func(filename string, r io.Reader) error) error {
	fh, err := c.FormFile(formFileField)
	if err != nil {
		return missingParam(c, "FILE")
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()
	return fn(fh.Filename, f)
}
