// Command samplepdf writes a small two-page PDF for trying the pipeline:
//
//	samplepdf -o sample.pdf
//	pdfrag --pdf sample.pdf --interactive
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

var firstPage = []string{
	"This is a sample PDF document created for testing the PDF text extraction function.",
	"",
	"Vector databases are specialized database systems designed to store and efficiently query high-dimensional vector embeddings.",
	"These embeddings are numerical representations of data that capture semantic meaning.",
	"",
	"Retrieval Augmented Generation (RAG) combines retrieval systems with generative AI to enhance the quality and accuracy of generated content.",
	"",
	"Agentic RAG takes this further by incorporating autonomous decision-making capabilities into the retrieval and generation process.",
	"This allows the system to independently determine what information to retrieve and how to use it effectively.",
}

var secondPage = []string{
	"This is the second page of our sample PDF document.",
	"",
	"Embedding databases make it easy to build AI applications by pairing vector search with document storage.",
	"",
	"Text chunking splits long documents into bounded segments so each one fits the context of an embedding model.",
	"Overlapping chunks preserve continuity across segment boundaries.",
}

func main() {
	output := flag.String("o", "sample.pdf", "Output path for the generated PDF")
	flag.Parse()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, "Sample PDF Document", "", "L", false)
	pdf.Ln(4)
	writeParagraphs(pdf, firstPage)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, "Additional Information", "", "L", false)
	pdf.Ln(4)
	writeParagraphs(pdf, secondPage)

	if err := pdf.OutputFileAndClose(*output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Sample PDF created at %s\n", *output)
}

func writeParagraphs(pdf *fpdf.Fpdf, paragraphs []string) {
	pdf.SetFont("Helvetica", "", 12)
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 6, paragraph, "", "L", false)
	}
}
