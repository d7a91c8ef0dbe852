package message_test

import (
	"fmt"

	"github.com/zostay/go-mailmsg/message"
)

func ExampleAssemble() {
	hdr := []byte("From: Alice <alice@example.com>\r\n" +
		"To: Bob <bob@example.com>, carol@example.com\r\n" +
		"Subject: =?UTF-8?Q?Hi=20there?=\r\n" +
		"Priority: urgent\r\n")

	parts := []*message.BodyPart{
		{
			Type:       "text",
			Subtype:    "plain",
			Encoding:   "quoted-printable",
			Parameters: map[string]string{"charset": "utf-8"},
			Content:    "See you at the caf=C3=A9.",
		},
	}

	m := message.Assemble(hdr, parts)

	fmt.Println(m.Subject)
	fmt.Println(m.SubjectCharset)
	fmt.Println(m.Priority)
	fmt.Println(m.From.Address())
	for _, to := range m.To {
		fmt.Println(to.Address())
	}
	fmt.Println(m.Body)
	// Output:
	// Hi there
	// UTF-8
	// high
	// alice@example.com
	// bob@example.com
	// carol@example.com
	// See you at the café.
}
